package store

import (
	"context"
	"testing"

	"github.com/shieldpool/core/pkg/merkletree"
	"github.com/shieldpool/core/pkg/notecache"
)

func TestMemoryStoreGetPutDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Put(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	v, err := s.Get(ctx, "k")
	if err != nil || string(v) != "v1" {
		t.Fatalf("Get after Put: %v %q", err, v)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "k"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Put(ctx, "a", []byte("1"))
	s.Put(ctx, "b", []byte("2"))

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := s.Get(ctx, "a"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after Clear, got %v", err)
	}
}

func TestMemoryStorePutCopiesValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buf := []byte("original")
	s.Put(ctx, "k", buf)
	buf[0] = 'X'

	v, _ := s.Get(ctx, "k")
	if string(v) != "original" {
		t.Fatalf("Put did not copy its input: got %q", v)
	}
}

func TestSaveLoadNoteCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	cache := notecache.New()
	state := cache.Export()
	state.SyncedHeight = map[notecache.AddressKey]uint32{{1, 2, 3}: 42}

	if err := SaveNoteCache(ctx, s, state); err != nil {
		t.Fatalf("SaveNoteCache: %v", err)
	}
	loaded, err := LoadNoteCache(ctx, s)
	if err != nil {
		t.Fatalf("LoadNoteCache: %v", err)
	}
	if loaded.SyncedHeight[notecache.AddressKey{1, 2, 3}] != 42 {
		t.Fatalf("synced height did not round trip")
	}
}

func TestSaveLoadTreeRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	tree := merkletree.New()
	var leaf merkletree.Hash
	leaf[0] = 0x01
	tree.Append(leaf)

	if err := SaveTree(ctx, s, "addr1", tree); err != nil {
		t.Fatalf("SaveTree: %v", err)
	}
	loaded, err := LoadTree(ctx, s, "addr1")
	if err != nil {
		t.Fatalf("LoadTree: %v", err)
	}
	if loaded.Root() != tree.Root() {
		t.Fatalf("tree root did not round trip")
	}
	if loaded.Size() != tree.Size() {
		t.Fatalf("tree size did not round trip")
	}
}
