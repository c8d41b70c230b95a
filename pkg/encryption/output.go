package encryption

import (
	"errors"

	"github.com/shieldpool/core/pkg/note"
)

// EncCiphertextLen is the full output ciphertext size: 564-byte plaintext
// plus a 16-byte AEAD tag (§6).
const EncCiphertextLen = note.PlaintextLen + 16

// OutCiphertextLen is the outgoing ciphertext size: 64-byte (pk_d || esk)
// plaintext plus a 16-byte AEAD tag (§6).
const OutCiphertextLen = 64 + 16

// ErrDecryptionFailed is returned on any length-validation failure ahead of
// attempting the AEAD open (§4.5, §7).
var ErrDecryptionFailed = errors.New("encryption: malformed candidate output")

// ErrCommitmentMismatch is returned when the recomputed cmu does not match
// the on-chain commitment, after a successful AEAD open (§4.5, §7).
var ErrCommitmentMismatch = errors.New("encryption: commitment mismatch")

// EncryptedOutput is the public material a shielded output carries on-chain
// (§6): cv(32) || cmu(32) || ephemeralKey(32) || encCiphertext(580) ||
// outCiphertext(80).
type EncryptedOutput struct {
	Cv            [32]byte
	Cmu           [32]byte
	EphemeralKey  [32]byte
	EncCiphertext [EncCiphertextLen]byte
	OutCiphertext [OutCiphertextLen]byte
}
