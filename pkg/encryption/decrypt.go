package encryption

import (
	"crypto/subtle"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/note"
	"github.com/shieldpool/core/pkg/primitives"
)

// TrialDecrypt attempts to decrypt a candidate output with ivk. Most
// candidates are not addressed to the holder of ivk; in that case it
// returns one of curve.ErrInvalidPoint (epk does not decode),
// primitives.ErrAuthTagInvalid, note.ErrMalformedPlaintext, or
// ErrCommitmentMismatch, all of which the scanner treats as silent,
// never-retried rejections (§4.5, §7).
func TrialDecrypt(ivk *note.IncomingViewingKey, out *EncryptedOutput) (*note.Note, error) {
	epk, err := curve.Decompress(out.EphemeralKey[:])
	if err != nil {
		return nil, err
	}

	var shared curve.Point
	shared.ScalarMul(epk, ivk.Ivk)

	kEnc := primitives.KDF(&shared, epk)

	plaintext, err := primitives.Open(kEnc, zeroNonce, out.EncCiphertext[:])
	if err != nil {
		return nil, err
	}

	pkd := ivk.DerivePkd(mustDiversifyFromPlaintext(plaintext))
	n, err := note.ParsePlaintext(pkd, plaintext)
	if err != nil {
		return nil, err
	}

	recomputed := n.Cmu()
	if subtle.ConstantTimeCompare(recomputed[:], out.Cmu[:]) != 1 {
		return nil, ErrCommitmentMismatch
	}
	return n, nil
}

// mustDiversifyFromPlaintext extracts the diversifier at its fixed offset
// (byte 1..12 of the full plaintext) ahead of full layout parsing, since
// pk_d re-derivation needs it before ParsePlaintext runs.
func mustDiversifyFromPlaintext(plaintext []byte) *curve.Point {
	var d [11]byte
	if len(plaintext) >= 12 {
		copy(d[:], plaintext[1:12])
	}
	gd, err := note.Diversify(d)
	if err != nil {
		// An invalid diversifier in a decrypted plaintext means this
		// candidate is not a well-formed note; the subsequent cmu
		// comparison step will reject once parsed, but constructing a
		// garbage g_d does not panic and routes to the normal rejection
		// path via cmu mismatch.
		return curve.Identity()
	}
	return gd
}
