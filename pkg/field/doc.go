// Package field implements the prime-field and scalar-field arithmetic that
// every other package in this module builds on: the Jubjub base field
// (modulo p, the BLS12-381 scalar field) and the Jubjub scalar field
// (modulo r, Jubjub's own prime subgroup order).
//
// Element is a thin wrapper around gnark-crypto's ecc/bls12-381/fr.Element,
// since p is exactly that package's modulus. Scalar wraps math/big instead:
// r is Jubjub's own prime subgroup order, not the native scalar field of
// any curve gnark-crypto ships, so there is no generated field-arithmetic
// type to build on for it. Both types keep their value permanently reduced
// into [0, modulus), and every arithmetic method takes and returns *Element
// or *Scalar so call sites read the same way regardless of which one backs
// them (z.Add(x, y) instead of z := x.Add(y)).
package field
