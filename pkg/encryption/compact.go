package encryption

import (
	"encoding/binary"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/note"
	"github.com/shieldpool/core/pkg/primitives"
)

// CompactPlaintextLen is the truncated plaintext a compact block carries:
// leadByte(1) || diversifier(11) || value_LE(8) || rseed-prefix(16) (§6).
const CompactPlaintextLen = 1 + 11 + 8 + 16

// CompactCiphertextLen is the on-wire compact note size: the truncated
// plaintext plus its AEAD tag (§6).
const CompactCiphertextLen = CompactPlaintextLen + 16

// EncryptCompact seals the same leading fields the full plaintext carries,
// truncated to the first 16 bytes of rseed, under the note's K_enc. A
// compact block can carry this instead of the full 580-byte output
// ciphertext when bandwidth matters; the scanner's full trial-decryption
// path is unaffected since it reads the full ciphertext (§6).
func EncryptCompact(n *note.Note, kEnc [32]byte) ([]byte, error) {
	var plaintext [CompactPlaintextLen]byte
	plaintext[0] = note.LeadByte
	copy(plaintext[1:12], n.Diversifier[:])
	binary.LittleEndian.PutUint64(plaintext[12:20], n.Value)
	copy(plaintext[20:36], n.Rseed[:16])
	return primitives.Seal(kEnc, zeroNonce, plaintext[:])
}

// CompactNote is what DecryptCompact recovers: enough to recognize
// ownership and surface a provisional balance, not enough to compute rcm
// (the rseed is truncated), so the scanner still needs the full ciphertext
// before the note is anchored or spent.
type CompactNote struct {
	Diversifier [11]byte
	Value       uint64
	RseedPrefix [16]byte
}

// DecryptCompact attempts compact trial-decryption with the ECDH shared
// secret derived from ivk and epk (§6).
func DecryptCompact(ivk *note.IncomingViewingKey, epk *curve.Point, ciphertext []byte) (*CompactNote, error) {
	if len(ciphertext) != CompactCiphertextLen {
		return nil, ErrDecryptionFailed
	}

	var shared curve.Point
	shared.ScalarMul(epk, ivk.Ivk)
	kEnc := primitives.KDF(&shared, epk)

	plaintext, err := primitives.Open(kEnc, zeroNonce, ciphertext)
	if err != nil {
		return nil, err
	}
	if plaintext[0] != note.LeadByte {
		return nil, note.ErrMalformedPlaintext
	}

	cn := &CompactNote{Value: binary.LittleEndian.Uint64(plaintext[12:20])}
	copy(cn.Diversifier[:], plaintext[1:12])
	copy(cn.RseedPrefix[:], plaintext[20:36])
	return cn, nil
}
