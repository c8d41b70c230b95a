package encryption

import (
	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/field"
	"github.com/shieldpool/core/pkg/primitives"
)

// EncryptOutgoing derives ock = PRF_ock(ovk, cv, cmu, epk) and AEAD-seals
// (pk_d || esk) under it, letting the sender later recover esk (and hence
// the shared secret and plaintext) from their own transaction without
// keeping a separate record (§4.5 addition, §9 Q2 revised).
func EncryptOutgoing(ovk [32]byte, cv, cmu, epk [32]byte, pkd *curve.Point, esk *field.Scalar) ([]byte, error) {
	ock := primitives.PRFOck(ovk, cv, cmu, epk)

	pkdBytes := pkd.Compress()
	eskBytes := esk.Bytes()

	plaintext := make([]byte, 0, 64)
	plaintext = append(plaintext, pkdBytes[:]...)
	plaintext = append(plaintext, eskBytes[:]...)

	return primitives.Seal(ock, zeroNonce, plaintext)
}

// DecryptOutgoing recovers (pk_d, esk) from the outgoing ciphertext using
// the sender's own ovk and the output's public fields.
func DecryptOutgoing(ovk [32]byte, cv, cmu, epk [32]byte, outCiphertext []byte) (*curve.Point, *field.Scalar, error) {
	ock := primitives.PRFOck(ovk, cv, cmu, epk)
	plaintext, err := primitives.Open(ock, zeroNonce, outCiphertext)
	if err != nil {
		return nil, nil, err
	}
	if len(plaintext) != 64 {
		return nil, nil, ErrDecryptionFailed
	}
	pkd, err := curve.Decompress(plaintext[:32])
	if err != nil {
		return nil, nil, err
	}
	esk := field.ScalarFromLEBytes(plaintext[32:])
	return pkd, esk, nil
}
