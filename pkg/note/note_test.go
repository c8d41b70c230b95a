package note

import (
	"testing"
)

func TestAddressEncodeDecodeRoundTrip(t *testing.T) {
	keys, err := GenerateFullKeySet()
	if err != nil {
		t.Fatalf("GenerateFullKeySet: %v", err)
	}
	ivk := &IncomingViewingKey{Ivk: keys.Ask}

	var d [11]byte
	for i := range d {
		d[i] = byte(i + 1)
	}
	addr, err := NewPaymentAddress(ivk, d)
	if err != nil {
		t.Fatalf("NewPaymentAddress: %v", err)
	}

	encoded, err := addr.Encode(HRPMainnet)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	hrp, decoded, err := DecodeAddress(encoded)
	if err != nil {
		t.Fatalf("DecodeAddress: %v", err)
	}
	if hrp != HRPMainnet {
		t.Fatalf("hrp mismatch: %s", hrp)
	}
	if decoded.Diversifier != addr.Diversifier || !decoded.Pkd.Equal(addr.Pkd) {
		t.Fatalf("round trip mismatch")
	}
}

func TestAddressRejectsCorruption(t *testing.T) {
	keys, err := GenerateFullKeySet()
	if err != nil {
		t.Fatalf("GenerateFullKeySet: %v", err)
	}
	ivk := &IncomingViewingKey{Ivk: keys.Ask}
	var d [11]byte
	d[0] = 1
	addr, err := NewPaymentAddress(ivk, d)
	if err != nil {
		t.Fatalf("NewPaymentAddress: %v", err)
	}
	encoded, err := addr.Encode(HRPMainnet)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	corrupted := []byte(encoded)
	// Flip a character in the data part, away from the HRP and separator.
	idx := len(corrupted) - 5
	if corrupted[idx] == 'q' {
		corrupted[idx] = 'p'
	} else {
		corrupted[idx] = 'q'
	}
	if _, _, err := DecodeAddress(string(corrupted)); err == nil {
		t.Fatalf("expected corrupted address to be rejected")
	}
}

func TestNotePlaintextRoundTrip(t *testing.T) {
	keys, err := GenerateFullKeySet()
	if err != nil {
		t.Fatalf("GenerateFullKeySet: %v", err)
	}
	ivk := &IncomingViewingKey{Ivk: keys.Ask}
	var d [11]byte
	d[0] = 7
	addr, err := NewPaymentAddress(ivk, d)
	if err != nil {
		t.Fatalf("NewPaymentAddress: %v", err)
	}

	var memo [MemoLen]byte
	copy(memo[:], "hello")
	n, err := New(addr, 1_000_000, memo)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	pt := n.Plaintext()
	parsed, err := ParsePlaintext(addr.Pkd, pt[:])
	if err != nil {
		t.Fatalf("ParsePlaintext: %v", err)
	}
	if parsed.Value != n.Value || parsed.Diversifier != n.Diversifier || parsed.Rseed != n.Rseed {
		t.Fatalf("plaintext round trip mismatch")
	}
	if parsed.Cmu() != n.Cmu() {
		t.Fatalf("recomputed cmu mismatch")
	}
}
