package encryption

import (
	"crypto/rand"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/field"
	"github.com/shieldpool/core/pkg/note"
	"github.com/shieldpool/core/pkg/primitives"
)

// zeroNonce is the fixed AEAD nonce used for both c_enc and c_out; see the
// Q2 resolution recorded in DESIGN.md.
var zeroNonce [12]byte

// Encrypt draws a fresh ephemeral key esk, derives the ECDH shared secret
// with the recipient's pk_d, and AEAD-seals the note plaintext. cv is
// computed from value and rcv so the returned EncryptedOutput is
// self-contained. Returns the output together with esk, since the builder
// needs esk again to fill in the outgoing ciphertext (§4.5, §4.10).
func Encrypt(n *note.Note, rcv *field.Scalar, ovk [32]byte) (*EncryptedOutput, *field.Scalar, error) {
	gd, err := note.Diversify(n.Diversifier)
	if err != nil {
		return nil, nil, err
	}

	esk, err := randomScalar()
	if err != nil {
		return nil, nil, err
	}

	var epk curve.Point
	epk.ScalarMul(gd, esk)

	var shared curve.Point
	shared.ScalarMul(n.Pkd, esk)

	kEnc := primitives.KDF(&shared, &epk)

	plaintext := n.Plaintext()
	ciphertext, err := primitives.Seal(kEnc, zeroNonce, plaintext[:])
	if err != nil {
		return nil, nil, err
	}

	cv := primitives.ValueCommit(n.Value, rcv)
	cmu := n.Cmu()
	epkBytes := epk.Compress()

	out := &EncryptedOutput{
		Cv:           cv.Compress(),
		Cmu:          cmu,
		EphemeralKey: epkBytes,
	}
	copy(out.EncCiphertext[:], ciphertext)

	outCiphertext, err := EncryptOutgoing(ovk, out.Cv, cmu, epkBytes, n.Pkd, esk)
	if err != nil {
		return nil, nil, err
	}
	copy(out.OutCiphertext[:], outCiphertext)

	return out, esk, nil
}

func randomScalar() (*field.Scalar, error) {
	var buf [64]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, err
	}
	return field.ScalarFromLEBytes(buf[:]), nil
}
