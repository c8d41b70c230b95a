package field

import (
	"crypto/subtle"
	"errors"
	"math/big"

	bls12381fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ErrDivisionByZero is returned by Invert when the element is zero.
var ErrDivisionByZero = errors.New("field: division by zero")

// ErrInvalidLength is returned when a byte slice does not decode to a
// field element of the expected size.
var ErrInvalidLength = errors.New("field: invalid byte length")

// Modulus is the Jubjub base field prime p, the scalar field of BLS12-381
// (see DESIGN.md, pkg/field). Jubjub is embedded in BLS12-381 precisely so that a
// Groth16 circuit over BLS12-381's scalar field can perform Jubjub
// arithmetic natively — which also means this modulus is exactly the one
// gnark-crypto's ecc/bls12-381/fr package implements, so Element is backed
// directly by bls12381fr.Element rather than math/big.
var Modulus, _ = new(big.Int).SetString("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)

// ByteLen is the little-endian encoded length of a field element.
const ByteLen = 32

// Element is an integer in [0, p), always kept reduced.
type Element struct {
	v bls12381fr.Element
}

// Zero returns the additive identity.
func Zero() *Element { return new(Element) }

// One returns the multiplicative identity.
func One() *Element {
	e := new(Element)
	e.v.SetOne()
	return e
}

// NewFromBigInt reduces x modulo p and returns the resulting element.
func NewFromBigInt(x *big.Int) *Element {
	e := new(Element)
	e.v.SetBigInt(x)
	return e
}

// NewFromUint64 builds an element from a small non-negative integer.
func NewFromUint64(x uint64) *Element {
	e := new(Element)
	e.v.SetUint64(x)
	return e
}

// NewFromBigIntString parses a base-10 string into a reduced element. It
// panics on a malformed literal, since its only use is decoding fixed
// curve/domain constants baked into the source.
func NewFromBigIntString(s string) *Element {
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("field: invalid decimal literal: " + s)
	}
	return NewFromBigInt(x)
}

// FromLEBytes decodes a little-endian 32-byte encoding. It does not require
// canonical reduction on input; the value is reduced modulo p.
func FromLEBytes(b []byte) (*Element, error) {
	if len(b) != ByteLen {
		return nil, ErrInvalidLength
	}
	be := reverse(b)
	e := new(Element)
	e.v.SetBytes(be)
	return e, nil
}

// Bytes returns the little-endian 32-byte canonical encoding.
func (e *Element) Bytes() [ByteLen]byte {
	be := e.v.Bytes()
	return reverseArray(be)
}

// BigInt returns the element's canonical value as a big.Int.
func (e *Element) BigInt() *big.Int {
	var out big.Int
	e.v.BigInt(&out)
	return &out
}

// IsZero reports whether the element is zero.
func (e *Element) IsZero() bool {
	return e.v.IsZero()
}

// Equal reports whether two elements are equal, in constant time.
func (e *Element) Equal(o *Element) bool {
	a := e.Bytes()
	b := o.Bytes()
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// Add sets z = x + y mod p and returns z.
func (z *Element) Add(x, y *Element) *Element {
	z.v.Add(&x.v, &y.v)
	return z
}

// Sub sets z = x - y mod p and returns z.
func (z *Element) Sub(x, y *Element) *Element {
	z.v.Sub(&x.v, &y.v)
	return z
}

// Neg sets z = -x mod p and returns z.
func (z *Element) Neg(x *Element) *Element {
	z.v.Neg(&x.v)
	return z
}

// Mul sets z = x * y mod p and returns z.
func (z *Element) Mul(x, y *Element) *Element {
	z.v.Mul(&x.v, &y.v)
	return z
}

// Square sets z = x * x mod p and returns z.
func (z *Element) Square(x *Element) *Element {
	z.v.Square(&x.v)
	return z
}

// Invert sets z = x^-1 mod p and returns z. Returns ErrDivisionByZero if x
// is zero; z is left unchanged in that case.
func (z *Element) Invert(x *Element) (*Element, error) {
	if x.IsZero() {
		return nil, ErrDivisionByZero
	}
	z.v.Inverse(&x.v)
	return z, nil
}

// Sqrt attempts to compute a square root of x modulo p. It reports ok=false
// if x is not a quadratic residue. The caller is responsible for picking
// between the returned root and its negation to match a desired
// sign/parity (see curve decompression).
func (z *Element) Sqrt(x *Element) (result *Element, ok bool) {
	var root bls12381fr.Element
	if root.Sqrt(&x.v) == nil {
		return nil, false
	}
	z.v = root
	return z, true
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

func reverseArray(a [ByteLen]byte) [ByteLen]byte {
	var out [ByteLen]byte
	for i := 0; i < ByteLen; i++ {
		out[i] = a[ByteLen-1-i]
	}
	return out
}
