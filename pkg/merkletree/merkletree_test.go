package merkletree

import "testing"

func TestSingleLeafWitnessMatchesEmptySubtreeHashes(t *testing.T) {
	var leaf Hash
	for i := range leaf {
		leaf[i] = 0x01
	}
	tree := New()
	pos := tree.Append(leaf)
	if pos != 0 {
		t.Fatalf("expected position 0, got %d", pos)
	}

	w, err := tree.Witness(0)
	if err != nil {
		t.Fatalf("Witness: %v", err)
	}
	for lvl := 0; lvl < Depth; lvl++ {
		if w.AuthPath[lvl] != emptyHash[lvl] {
			t.Fatalf("authPath[%d] does not match precomputed empty-subtree hash", lvl)
		}
	}
	if w.Anchor != tree.Root() {
		t.Fatalf("witness anchor does not match current root")
	}
	if !Verify(leaf, w.AuthPath, 0, tree.Root()) {
		t.Fatalf("verify failed for the single appended leaf")
	}
}

func TestRootChangesIffSizeChanges(t *testing.T) {
	tree := New()
	r0 := tree.Root()
	var leaf Hash
	leaf[0] = 0x02
	tree.Append(leaf)
	r1 := tree.Root()
	if r0 == r1 {
		t.Fatalf("root did not change after append")
	}
	r2 := tree.Root()
	if r1 != r2 {
		t.Fatalf("root changed without an append")
	}
}

func TestEveryAppendedLeafVerifies(t *testing.T) {
	tree := New()
	var leaves []Hash
	for i := 0; i < 20; i++ {
		var l Hash
		l[0] = byte(i + 1)
		leaves = append(leaves, l)
		tree.Append(l)
	}
	root := tree.Root()
	for i, l := range leaves {
		w, err := tree.Witness(uint64(i))
		if err != nil {
			t.Fatalf("Witness(%d): %v", i, err)
		}
		if !Verify(l, w.AuthPath, uint64(i), root) {
			t.Fatalf("verify failed for leaf %d", i)
		}
	}
}

func TestTruncateToDropsLaterLeaves(t *testing.T) {
	tree := New()
	var leaves []Hash
	for i := 0; i < 10; i++ {
		var l Hash
		l[0] = byte(i + 1)
		leaves = append(leaves, l)
		tree.Append(l)
	}
	tree.TruncateTo(5)
	if tree.Size() != 5 {
		t.Fatalf("expected size 5, got %d", tree.Size())
	}

	fresh := New()
	for _, l := range leaves[:5] {
		fresh.Append(l)
	}
	if tree.Root() != fresh.Root() {
		t.Fatalf("truncated tree root does not match a tree built from scratch with the same leaves")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	tree := New()
	for i := 0; i < 7; i++ {
		var l Hash
		l[0] = byte(i + 1)
		tree.Append(l)
	}
	snap := tree.Export()
	restored := Import(snap)
	if restored.Root() != tree.Root() || restored.Size() != tree.Size() {
		t.Fatalf("import did not reproduce the exported tree")
	}
}
