package primitives

import (
	"golang.org/x/crypto/blake2s"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/field"
)

// Signature is a Schnorr-on-Jubjub signature (R, s), 64 bytes compressed
// (§4.3).
type Signature struct {
	R curve.Point
	S field.Scalar
}

// Bytes returns the 64-byte compressed encoding: compressed R (32) || s (32).
func (sig *Signature) Bytes() [64]byte {
	var out [64]byte
	r := sig.R.Compress()
	s := sig.S.Bytes()
	copy(out[:32], r[:])
	copy(out[32:], s[:])
	return out
}

// DecodeSignature parses a 64-byte compressed signature.
func DecodeSignature(b []byte) (*Signature, error) {
	if len(b) != 64 {
		return nil, curve.ErrInvalidPoint
	}
	r, err := curve.Decompress(b[:32])
	if err != nil {
		return nil, err
	}
	s := field.ScalarFromLEBytes(b[32:])
	return &Signature{R: *r, S: *s}, nil
}

// Sign produces a deterministic Schnorr signature over base with secret
// key sk, public key A = [sk]·base, and message m: r = H(sk||m) mod r,
// R = [r]·base, c = H(R||A||m) mod r, s = r + c·sk mod r (§4.3).
func Sign(base *curve.Point, sk *field.Scalar, m []byte) *Signature {
	skBytes := sk.Bytes()
	nonceHash := blake2sWithPrefix("ShP_SigNonce0000", skBytes[:], m)
	r := field.ScalarFromLEBytes(nonceHash[:])

	var R curve.Point
	R.ScalarMul(base, r)

	var A curve.Point
	A.ScalarMul(base, sk)

	c := challenge(&R, &A, m)

	var cSk field.Scalar
	cSk.Mul(c, sk)
	var s field.Scalar
	s.Add(r, &cSk)

	return &Signature{R: R, S: s}
}

// Verify checks that [s]·base == R + [c]·A for c = H(R||A||m).
func Verify(base *curve.Point, A *curve.Point, m []byte, sig *Signature) bool {
	c := challenge(&sig.R, A, m)

	var lhs curve.Point
	lhs.ScalarMul(base, &sig.S)

	var cA curve.Point
	cA.ScalarMul(A, c)

	var rhs curve.Point
	rhs.Add(&sig.R, &cA)

	return lhs.Equal(&rhs)
}

func challenge(R, A *curve.Point, m []byte) *field.Scalar {
	rBytes := R.Compress()
	aBytes := A.Compress()
	h := blake2sWithPrefix("ShP_SigChallenge", rBytes[:], aBytes[:], m)
	return field.ScalarFromLEBytes(h[:])
}

// BindingSignature is the same Schnorr construction specialized to the
// binding key pair (bsk, bvk = [bsk]·ValueCommitRandomnessBase) derived
// from the sum of per-input and per-output value-commitment randomness
// (§4.3 addition, §4.10).
func BindingSignature(bsk *field.Scalar, sighash []byte) *Signature {
	return Sign(curve.ValueCommitRandomnessBase(), bsk, sighash)
}

// VerifyBindingSignature checks a binding signature against the computed
// binding verification key bvk.
func VerifyBindingSignature(bvk *curve.Point, sighash []byte, sig *Signature) bool {
	return Verify(curve.ValueCommitRandomnessBase(), bvk, sighash, sig)
}

// blake2s256 is a small convenience for single-slice hashing with no prefix
// literal; nothing in the module calls it.
func blake2s256(b []byte) [32]byte {
	return blake2s.Sum256(b)
}
