package field

import (
	"crypto/subtle"
	"math/big"
)

// ScalarModulus is the Jubjub prime subgroup order r (§9 Q3).
var ScalarModulus, _ = new(big.Int).SetString("e7db4ea6533afa906673b0101343b00a6682093ccc81082d0970e5ed6f72cb7", 16)

// Scalar is an integer in [0, r), always kept reduced. Scalars are used for
// secret keys (ask, nsk, esk, ivk-derived randomness) and are the exponents
// passed to scalar multiplication.
type Scalar struct {
	v big.Int
}

// ScalarZero returns the additive identity.
func ScalarZero() *Scalar { return new(Scalar) }

// ScalarOne returns the multiplicative identity.
func ScalarOne() *Scalar {
	s := new(Scalar)
	s.v.SetInt64(1)
	return s
}

// NewScalarFromBigInt reduces x modulo r.
func NewScalarFromBigInt(x *big.Int) *Scalar {
	s := new(Scalar)
	s.v.Mod(x, ScalarModulus)
	return s
}

// ScalarFromLEBytes reduces an arbitrary-length little-endian byte string
// modulo r. Unlike FromLEBytes for field elements this accepts any length,
// since it is the standard way PRF_expand output (64 bytes) is turned into
// a scalar (§4.3).
func ScalarFromLEBytes(b []byte) *Scalar {
	be := reverse(b)
	s := new(Scalar)
	s.v.SetBytes(be)
	s.v.Mod(&s.v, ScalarModulus)
	return s
}

// Bytes returns the little-endian 32-byte canonical encoding.
func (s *Scalar) Bytes() [ByteLen]byte {
	var out [ByteLen]byte
	be := s.v.Bytes()
	copy(out[ByteLen-len(be):], be)
	return reverseArray(out)
}

// BigInt returns the scalar's canonical value.
func (s *Scalar) BigInt() *big.Int {
	return new(big.Int).Set(&s.v)
}

// IsZero reports whether the scalar is zero.
func (s *Scalar) IsZero() bool {
	return s.v.Sign() == 0
}

// Equal reports whether two scalars are equal, in constant time.
func (s *Scalar) Equal(o *Scalar) bool {
	a := s.Bytes()
	b := o.Bytes()
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// Add sets z = x + y mod r and returns z.
func (z *Scalar) Add(x, y *Scalar) *Scalar {
	z.v.Add(&x.v, &y.v)
	z.v.Mod(&z.v, ScalarModulus)
	return z
}

// Sub sets z = x - y mod r and returns z.
func (z *Scalar) Sub(x, y *Scalar) *Scalar {
	z.v.Sub(&x.v, &y.v)
	z.v.Mod(&z.v, ScalarModulus)
	return z
}

// Mul sets z = x * y mod r and returns z.
func (z *Scalar) Mul(x, y *Scalar) *Scalar {
	z.v.Mul(&x.v, &y.v)
	z.v.Mod(&z.v, ScalarModulus)
	return z
}
