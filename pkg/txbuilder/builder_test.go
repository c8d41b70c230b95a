package txbuilder

import (
	"context"
	"testing"

	"github.com/shieldpool/core/pkg/merkletree"
	"github.com/shieldpool/core/pkg/note"
	"github.com/shieldpool/core/pkg/prover"
)

func testAddress(t *testing.T) (*note.FullKeySet, *note.PaymentAddress) {
	t.Helper()
	keys, err := note.GenerateFullKeySet()
	if err != nil {
		t.Fatalf("GenerateFullKeySet: %v", err)
	}
	ivk := &note.IncomingViewingKey{Ivk: keys.Ask}
	var d [11]byte
	d[0] = 1
	addr, err := note.NewPaymentAddress(ivk, d)
	if err != nil {
		t.Fatalf("NewPaymentAddress: %v", err)
	}
	return keys, addr
}

func TestBuildSingleSpendSingleOutput(t *testing.T) {
	keys, addr := testAddress(t)

	n, err := note.New(addr, 1000, [note.MemoLen]byte{})
	if err != nil {
		t.Fatalf("note.New: %v", err)
	}
	var pos uint64
	n.Position = &pos

	tree := merkletree.New()
	tree.Append(n.Cmu())
	witness, err := tree.Witness(0)
	if err != nil {
		t.Fatalf("Witness: %v", err)
	}

	spend := SpendInput{
		Note:    n,
		Witness: witness,
		Ask:     keys.Ask,
		Nsk:     keys.Nsk,
		Nk:      keys.Nk,
	}

	_, recvAddr := testAddress(t)
	output := OutputParams{
		Addr:  recvAddr,
		Value: 1000,
		Ovk:   keys.Ovk,
	}

	bld := New(prover.MockProver{})
	bundle, err := bld.Build(context.Background(), []SpendInput{spend}, []OutputParams{output}, Params{
		Version:        4,
		VersionGroupID: 0x892f2085,
		LockTime:       0,
		ExpiryHeight:   1000,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if bundle.ValueBalance != 0 {
		t.Fatalf("expected zero value balance, got %d", bundle.ValueBalance)
	}
	if len(bundle.Spends) != 1 || len(bundle.Outputs) != 1 {
		t.Fatalf("unexpected description counts")
	}
	if bundle.Spends[0].Anchor != witness.Anchor {
		t.Fatalf("spend anchor mismatch")
	}

	var zero [64]byte
	if bundle.BindingSig == zero {
		t.Fatalf("binding signature was not filled")
	}
	if bundle.Spends[0].SpendAuthSig == zero {
		t.Fatalf("spend auth sig was not filled")
	}
}

func TestBuildRejectsOverspend(t *testing.T) {
	keys, addr := testAddress(t)
	n, err := note.New(addr, 500, [note.MemoLen]byte{})
	if err != nil {
		t.Fatalf("note.New: %v", err)
	}
	var pos uint64
	n.Position = &pos

	tree := merkletree.New()
	tree.Append(n.Cmu())
	witness, _ := tree.Witness(0)

	spend := SpendInput{Note: n, Witness: witness, Ask: keys.Ask, Nsk: keys.Nsk, Nk: keys.Nk}
	_, recvAddr := testAddress(t)
	output := OutputParams{Addr: recvAddr, Value: 900, Ovk: keys.Ovk}

	bld := New(prover.MockProver{})
	_, err = bld.Build(context.Background(), []SpendInput{spend}, []OutputParams{output}, Params{Version: 4})
	if err != ErrValueUnderflow {
		t.Fatalf("expected ErrValueUnderflow, got %v", err)
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	keys, addr := testAddress(t)
	n, err := note.New(addr, 42, [note.MemoLen]byte{})
	if err != nil {
		t.Fatalf("note.New: %v", err)
	}
	var pos uint64
	n.Position = &pos
	tree := merkletree.New()
	tree.Append(n.Cmu())
	witness, _ := tree.Witness(0)

	spend := SpendInput{Note: n, Witness: witness, Ask: keys.Ask, Nsk: keys.Nsk, Nk: keys.Nk}
	_, recvAddr := testAddress(t)
	output := OutputParams{Addr: recvAddr, Value: 42, Ovk: keys.Ovk}

	bld := New(prover.MockProver{})
	bundle, err := bld.Build(context.Background(), []SpendInput{spend}, []OutputParams{output}, Params{
		Version: 4, VersionGroupID: 1, LockTime: 7, ExpiryHeight: 100,
		TransparentIn:  []TransparentInput{{Raw: []byte("abc")}},
		TransparentOut: []TransparentOutput{{Raw: []byte("defgh")}},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	encoded, err := bundle.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	decoded, err := Deserialize(encoded)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	reencoded, err := decoded.Serialize()
	if err != nil {
		t.Fatalf("re-Serialize: %v", err)
	}
	if string(encoded) != string(reencoded) {
		t.Fatalf("serialize/deserialize is not byte-for-byte identity")
	}
	if decoded.Version != bundle.Version || decoded.ExpiryHeight != bundle.ExpiryHeight {
		t.Fatalf("scalar field mismatch after round trip")
	}
	if len(decoded.TransparentIn) != 1 || string(decoded.TransparentIn[0].Raw) != "abc" {
		t.Fatalf("transparent input round trip mismatch")
	}
}

func TestSighashEmptyBundleUsesAllZeroes(t *testing.T) {
	if hashTransparent(nil) != ([32]byte{}) || hashSpendsWithoutSigs(nil) != ([32]byte{}) || hashOutputs(nil) != ([32]byte{}) {
		t.Fatalf("empty-set hashes are not all zeroes")
	}

	b := &Bundle{Version: 4, VersionGroupID: 1}
	h1 := b.Sighash()

	b2 := &Bundle{Version: 4, VersionGroupID: 1}
	h2 := b2.Sighash()
	if h1 != h2 {
		t.Fatalf("sighash is not deterministic for identical empty bundles")
	}

	b3 := &Bundle{Version: 4, VersionGroupID: 2}
	h3 := b3.Sighash()
	if h1 == h3 {
		t.Fatalf("sighash did not change with versionGroupId")
	}
}
