package notecache

import (
	"math/big"
	"testing"

	"github.com/shieldpool/core/pkg/field"
	"github.com/shieldpool/core/pkg/merkletree"
	"github.com/shieldpool/core/pkg/note"
)

func testAddress(t *testing.T) (*note.IncomingViewingKey, *note.PaymentAddress, AddressKey) {
	t.Helper()
	ivk := &note.IncomingViewingKey{Ivk: field.NewScalarFromBigInt(big.NewInt(0x2a))}
	var d [11]byte
	d[0] = 1
	addr, err := note.NewPaymentAddress(ivk, d)
	if err != nil {
		t.Fatalf("NewPaymentAddress: %v", err)
	}
	return ivk, addr, KeyForAddress(addr)
}

func mkEntry(t *testing.T, addr *note.PaymentAddress, value uint64, height uint32) *Entry {
	t.Helper()
	var memo [note.MemoLen]byte
	n, err := note.New(addr, value, memo)
	if err != nil {
		t.Fatalf("note.New: %v", err)
	}
	return &Entry{
		Note:        n,
		Address:     KeyForAddress(addr),
		BlockHeight: height,
	}
}

func TestAddNoteIdempotentOnCommitment(t *testing.T) {
	_, addr, key := testAddress(t)
	c := New()
	e := mkEntry(t, addr, 100, 10)
	c.AddNote(e)
	c.AddNote(e)
	if len(c.GetNotesFor(key)) != 1 {
		t.Fatalf("AddNote was not idempotent")
	}
}

func TestGetSpendableRequiresWitnessAndConfirmations(t *testing.T) {
	_, addr, key := testAddress(t)
	c := New()
	e := mkEntry(t, addr, 500, 100)
	c.AddNote(e)
	c.UpdateTreeState(TreeState{BlockHeight: 105})

	if got := c.GetSpendable(key, 1); len(got) != 0 {
		t.Fatalf("expected no spendable notes without a witness, got %d", len(got))
	}

	c.UpdateWitness(e.Note.Cmu(), &merkletree.Witness{Position: 0})

	if got := c.GetSpendable(key, 100); len(got) != 0 {
		t.Fatalf("expected no spendable notes below the confirmation threshold, got %d", len(got))
	}
	if got := c.GetSpendable(key, 6); len(got) != 1 {
		t.Fatalf("expected 1 spendable note at the confirmation threshold, got %d", len(got))
	}
}

func TestMarkSpentAndBalance(t *testing.T) {
	_, addr, key := testAddress(t)
	c := New()
	e1 := mkEntry(t, addr, 100, 10)
	e2 := mkEntry(t, addr, 200, 10)
	c.AddNote(e1)
	c.AddNote(e2)
	c.UpdateTreeState(TreeState{BlockHeight: 10})

	total, _ := c.Balance(key, 0)
	if total != 300 {
		t.Fatalf("expected total 300, got %d", total)
	}

	nf1 := e1.Note.Cmu() // stand-in nullifier value for the test
	e1.Nullifier = &nf1
	c.byNullifier[nf1] = e1
	c.MarkSpent(nf1)

	total, _ = c.Balance(key, 0)
	if total != 200 {
		t.Fatalf("expected total 200 after spend, got %d", total)
	}
}

func TestRevertToHeightDropsLaterEntries(t *testing.T) {
	_, addr, key := testAddress(t)
	c := New()
	e1 := mkEntry(t, addr, 100, 100)
	e2 := mkEntry(t, addr, 200, 150)
	e3 := mkEntry(t, addr, 300, 200)
	c.AddNote(e1)
	c.AddNote(e2)
	c.AddNote(e3)

	c.RevertToHeight(150)

	entries := c.GetNotesFor(key)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries to survive, got %d", len(entries))
	}
	for _, e := range entries {
		if e.BlockHeight > 150 {
			t.Fatalf("entry at height %d survived revert_to_height(150)", e.BlockHeight)
		}
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	_, addr, key := testAddress(t)
	c := New()
	e := mkEntry(t, addr, 400, 50)
	c.AddNote(e)
	c.UpdateWitness(e.Note.Cmu(), &merkletree.Witness{Position: 3})
	c.UpdateTreeState(TreeState{Root: [32]byte{1, 2, 3}, Size: 4, BlockHeight: 55})
	c.UpdateSyncedHeight(key, 55)

	state := c.Export()
	c2, err := Import(state)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if c2.TreeState() != c.TreeState() {
		t.Fatalf("tree state did not survive round trip")
	}
	if c2.SyncedHeight(key) != 55 {
		t.Fatalf("synced height did not survive round trip")
	}
	got := c2.GetNotesFor(key)
	if len(got) != 1 || got[0].Note.Value != 400 {
		t.Fatalf("entry did not survive round trip: %+v", got)
	}
	if got[0].Witness == nil || got[0].Witness.Position != 3 {
		t.Fatalf("witness did not survive round trip")
	}
}
