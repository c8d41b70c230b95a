package scanner

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/encryption"
	"github.com/shieldpool/core/pkg/field"
	"github.com/shieldpool/core/pkg/merkletree"
	"github.com/shieldpool/core/pkg/note"
	"github.com/shieldpool/core/pkg/notecache"
)

func testIvkAndAddress(t *testing.T) (*note.IncomingViewingKey, *note.PaymentAddress) {
	t.Helper()
	ivk := &note.IncomingViewingKey{Ivk: randomScalar(t)}
	var d [11]byte
	d[0] = 7
	addr, err := note.NewPaymentAddress(ivk, d)
	if err != nil {
		t.Fatalf("NewPaymentAddress: %v", err)
	}
	return ivk, addr
}

func randomScalar(t *testing.T) *field.Scalar {
	t.Helper()
	var buf [64]byte
	if _, err := rand.Read(buf[:]); err != nil {
		t.Fatalf("rand: %v", err)
	}
	return field.ScalarFromLEBytes(buf[:])
}

func mkCompactOutput(t *testing.T, addr *note.PaymentAddress, value uint64) (CompactOutput, [32]byte) {
	t.Helper()
	var memo [note.MemoLen]byte
	n, err := note.New(addr, value, memo)
	if err != nil {
		t.Fatalf("note.New: %v", err)
	}
	var ovk [32]byte
	enc, _, err := encryption.Encrypt(n, randomScalar(t), ovk)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	return CompactOutput{
		Cv:            enc.Cv,
		Cmu:           enc.Cmu,
		EphemeralKey:  enc.EphemeralKey,
		EncCiphertext: enc.EncCiphertext[:],
	}, n.Cmu()
}

func newTestScanner(t *testing.T, addr *note.PaymentAddress, ivk *note.IncomingViewingKey) (*Scanner, notecache.AddressKey) {
	t.Helper()
	tree := merkletree.New()
	cache := notecache.New()
	var nk curve.Point
	nk.ScalarMul(curve.NullifierKeyBase(), randomScalar(t))
	key := notecache.KeyForAddress(addr)
	s := New(tree, cache, ivk, &nk, key, zerolog.Nop())
	return s, key
}

func TestScanBatchFindsOwnedNote(t *testing.T) {
	ivk, addr := testIvkAndAddress(t)
	s, key := newTestScanner(t, addr, ivk)

	out, cmu := mkCompactOutput(t, addr, 1_000_000)
	block := &Block{
		Height: 1,
		Hash:   [32]byte{1},
		Txs:    []Transaction{{Outputs: []CompactOutput{out}}},
	}
	source := NewSliceBlockSource([]*Block{block})

	found, err := s.ScanBatch(context.Background(), source, 1, 1, nil)
	if err != nil {
		t.Fatalf("ScanBatch: %v", err)
	}
	if found != 1 {
		t.Fatalf("expected 1 note found, got %d", found)
	}

	entries := s.cache.GetNotesFor(key)
	if len(entries) != 1 {
		t.Fatalf("expected 1 cached entry, got %d", len(entries))
	}
	if entries[0].Witness == nil {
		t.Fatalf("expected witness to be computed after the batch")
	}
	if entries[0].Note.Cmu() != cmu {
		t.Fatalf("cached note's cmu does not match the encrypted output's cmu")
	}

	m := s.Metrics()
	if m.NotesFound != 1 || m.BlocksScanned != 1 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
}

func TestScanBatchWrongIvkFindsNothing(t *testing.T) {
	_, addr := testIvkAndAddress(t)
	wrongIvk, _ := testIvkAndAddress(t)

	s, _ := newTestScanner(t, addr, wrongIvk)

	out, _ := mkCompactOutput(t, addr, 1_000_000)
	block := &Block{Height: 1, Hash: [32]byte{1}, Txs: []Transaction{{Outputs: []CompactOutput{out}}}}
	source := NewSliceBlockSource([]*Block{block})

	found, err := s.ScanBatch(context.Background(), source, 1, 1, nil)
	if err != nil {
		t.Fatalf("ScanBatch: %v", err)
	}
	if found != 0 {
		t.Fatalf("expected 0 notes found with the wrong ivk, got %d", found)
	}

	m := s.Metrics()
	if m.AuthTagFailures == 0 {
		t.Fatalf("expected at least one auth-tag failure counted")
	}
}

func TestScanBatchReorgRevertsCache(t *testing.T) {
	ivk, addr := testIvkAndAddress(t)
	s, key := newTestScanner(t, addr, ivk)

	out1, _ := mkCompactOutput(t, addr, 100)
	b1 := &Block{Height: 1, Hash: [32]byte{1}, Txs: []Transaction{{Outputs: []CompactOutput{out1}}}}

	out2, _ := mkCompactOutput(t, addr, 200)
	b2 := &Block{Height: 2, Hash: [32]byte{2}, PrevHash: [32]byte{1}, Txs: []Transaction{{Outputs: []CompactOutput{out2}}}}

	source := NewSliceBlockSource([]*Block{b1, b2})
	if _, err := s.ScanBatch(context.Background(), source, 1, 2, nil); err != nil {
		t.Fatalf("initial ScanBatch: %v", err)
	}
	if got := len(s.cache.GetNotesFor(key)); got != 2 {
		t.Fatalf("expected 2 entries before reorg, got %d", got)
	}

	out2b, _ := mkCompactOutput(t, addr, 300)
	b2Fork := &Block{Height: 2, Hash: [32]byte{0xff}, PrevHash: [32]byte{0xaa}, Txs: []Transaction{{Outputs: []CompactOutput{out2b}}}}
	forkSource := NewSliceBlockSource([]*Block{b2Fork})

	if _, err := s.ScanBatch(context.Background(), forkSource, 2, 2, nil); err != nil {
		t.Fatalf("reorg ScanBatch: %v", err)
	}

	entries := s.cache.GetNotesFor(key)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after reorg replay, got %d", len(entries))
	}
	var total uint64
	for _, e := range entries {
		total += e.Note.Value
	}
	if total != 400 {
		t.Fatalf("expected surviving value 100 + replayed 300 = 400, got %d", total)
	}
}

func TestScanBatchCancellation(t *testing.T) {
	ivk, addr := testIvkAndAddress(t)
	s, _ := newTestScanner(t, addr, ivk)

	out, _ := mkCompactOutput(t, addr, 50)
	b1 := &Block{Height: 1, Hash: [32]byte{1}, Txs: []Transaction{{Outputs: []CompactOutput{out}}}}
	b2 := &Block{Height: 2, Hash: [32]byte{2}, PrevHash: [32]byte{1}, Txs: []Transaction{{Outputs: []CompactOutput{out}}}}

	s.Cancel()
	source := NewSliceBlockSource([]*Block{b1, b2})
	found, err := s.ScanBatch(context.Background(), source, 1, 2, nil)
	if err != nil {
		t.Fatalf("ScanBatch: %v", err)
	}
	if found != 0 {
		t.Fatalf("expected cancellation before any block is processed, got %d notes", found)
	}
}
