// Package curve implements the twisted-Edwards curve group used throughout
// this module (Jubjub, embedded in BLS12-381): affine point arithmetic,
// compressed encoding, hash-to-curve (GroupHash), and the fixed generator
// basis spend authorization, nullifier derivation, and value commitments
// are built on.
//
// Point addition, doubling, negation, and scalar multiplication delegate to
// gnark-crypto's ecc/bls12-381/twistededwards package, the exact embedded
// Edwards curve it ships for BLS12-381. Compression/decompression use this
// module's own fixed 32-byte little-endian-with-sign-bit wire format (§4.2)
// rather than the library's own Marshal/Bytes, and GroupHash's unchecked
// decompression step (hash.go) solves the curve equation directly, since
// both need this module's exact byte layout before a library point value
// exists to hand off to.
package curve
