package encryption

import (
	"math/big"
	"testing"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/field"
	"github.com/shieldpool/core/pkg/note"
	"github.com/shieldpool/core/pkg/primitives"
)

func TestEncryptTrialDecryptRoundTrip(t *testing.T) {
	keys, err := note.GenerateFullKeySet()
	if err != nil {
		t.Fatalf("GenerateFullKeySet: %v", err)
	}
	ivk := &note.IncomingViewingKey{Ivk: field.NewScalarFromBigInt(big.NewInt(0x2a))}

	var d [11]byte
	d[0] = 1
	addr, err := note.NewPaymentAddress(ivk, d)
	if err != nil {
		t.Fatalf("NewPaymentAddress: %v", err)
	}

	var memo [note.MemoLen]byte
	n, err := note.New(addr, 1_000_000, memo)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rcv := field.NewScalarFromBigInt(big.NewInt(99))
	out, _, err := Encrypt(n, rcv, keys.Ovk)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	got, err := TrialDecrypt(ivk, out)
	if err != nil {
		t.Fatalf("TrialDecrypt: %v", err)
	}
	if got.Value != n.Value || got.Diversifier != n.Diversifier || got.Rseed != n.Rseed {
		t.Fatalf("decrypted note does not match original")
	}
	if got.Cmu() != n.Cmu() {
		t.Fatalf("recomputed cmu does not match")
	}
}

func TestTrialDecryptWrongIvkRejects(t *testing.T) {
	keys, err := note.GenerateFullKeySet()
	if err != nil {
		t.Fatalf("GenerateFullKeySet: %v", err)
	}
	ivk := &note.IncomingViewingKey{Ivk: field.NewScalarFromBigInt(big.NewInt(0x2a))}

	var d [11]byte
	d[0] = 1
	addr, err := note.NewPaymentAddress(ivk, d)
	if err != nil {
		t.Fatalf("NewPaymentAddress: %v", err)
	}
	var memo [note.MemoLen]byte
	n, err := note.New(addr, 1_000_000, memo)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rcv := field.NewScalarFromBigInt(big.NewInt(99))
	out, _, err := Encrypt(n, rcv, keys.Ovk)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	wrongIvk := &note.IncomingViewingKey{Ivk: field.NewScalarFromBigInt(big.NewInt(0x99))}
	if _, err := TrialDecrypt(wrongIvk, out); err == nil {
		t.Fatalf("expected trial decryption with the wrong ivk to fail")
	} else if err != primitives.ErrAuthTagInvalid && err != ErrCommitmentMismatch {
		t.Fatalf("expected AuthTagInvalid or CommitmentMismatch, got %v", err)
	}
}

func TestOutgoingRoundTrip(t *testing.T) {
	keys, err := note.GenerateFullKeySet()
	if err != nil {
		t.Fatalf("GenerateFullKeySet: %v", err)
	}
	ivk := &note.IncomingViewingKey{Ivk: field.NewScalarFromBigInt(big.NewInt(0x2a))}
	var d [11]byte
	d[0] = 1
	addr, err := note.NewPaymentAddress(ivk, d)
	if err != nil {
		t.Fatalf("NewPaymentAddress: %v", err)
	}
	var memo [note.MemoLen]byte
	n, err := note.New(addr, 500, memo)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rcv := field.NewScalarFromBigInt(big.NewInt(7))
	out, esk, err := Encrypt(n, rcv, keys.Ovk)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	pkd, recoveredEsk, err := DecryptOutgoing(keys.Ovk, out.Cv, out.Cmu, out.EphemeralKey, out.OutCiphertext[:])
	if err != nil {
		t.Fatalf("DecryptOutgoing: %v", err)
	}
	if !pkd.Equal(n.Pkd) {
		t.Fatalf("recovered pk_d does not match")
	}
	if !recoveredEsk.Equal(esk) {
		t.Fatalf("recovered esk does not match")
	}
}

func TestCompactRoundTrip(t *testing.T) {
	ivk := &note.IncomingViewingKey{Ivk: field.NewScalarFromBigInt(big.NewInt(0x2a))}
	var d [11]byte
	d[0] = 1
	addr, err := note.NewPaymentAddress(ivk, d)
	if err != nil {
		t.Fatalf("NewPaymentAddress: %v", err)
	}
	var memo [note.MemoLen]byte
	n, err := note.New(addr, 42, memo)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var ovk [32]byte
	rcv := field.NewScalarFromBigInt(big.NewInt(3))
	out, _, err := Encrypt(n, rcv, ovk)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	epk, err := curve.Decompress(out.EphemeralKey[:])
	if err != nil {
		t.Fatalf("Decompress epk: %v", err)
	}
	var shared curve.Point
	shared.ScalarMul(epk, ivk.Ivk)
	kEnc := primitives.KDF(&shared, epk)

	ciphertext, err := EncryptCompact(n, kEnc)
	if err != nil {
		t.Fatalf("EncryptCompact: %v", err)
	}
	if len(ciphertext) != CompactCiphertextLen {
		t.Fatalf("expected ciphertext of length %d, got %d", CompactCiphertextLen, len(ciphertext))
	}

	got, err := DecryptCompact(ivk, epk, ciphertext)
	if err != nil {
		t.Fatalf("DecryptCompact: %v", err)
	}
	if got.Value != n.Value || got.Diversifier != n.Diversifier {
		t.Fatalf("compact note does not match original")
	}
	var wantPrefix [16]byte
	copy(wantPrefix[:], n.Rseed[:16])
	if got.RseedPrefix != wantPrefix {
		t.Fatalf("rseed prefix does not match")
	}
}
