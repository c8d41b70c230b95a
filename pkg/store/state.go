package store

import (
	"context"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/shieldpool/core/pkg/merkletree"
	"github.com/shieldpool/core/pkg/notecache"
)

// SaveNoteCache CBOR-encodes a note cache snapshot and writes it under
// NoteCacheStateKey (§6).
func SaveNoteCache(ctx context.Context, s Store, state notecache.ExportedState) error {
	b, err := cbor.Marshal(state)
	if err != nil {
		return fmt.Errorf("store: marshal notecache state: %w", err)
	}
	return s.Put(ctx, NoteCacheStateKey, b)
}

// LoadNoteCache reads and decodes the note cache snapshot, returning
// ErrNotFound if nothing has been saved yet.
func LoadNoteCache(ctx context.Context, s Store) (notecache.ExportedState, error) {
	var state notecache.ExportedState
	b, err := s.Get(ctx, NoteCacheStateKey)
	if err != nil {
		return state, err
	}
	if err := cbor.Unmarshal(b, &state); err != nil {
		return state, fmt.Errorf("store: unmarshal notecache state: %w", err)
	}
	return state, nil
}

// SaveTree CBOR-encodes a commitment tree snapshot for addressID (§6).
func SaveTree(ctx context.Context, s Store, addressID string, tree *merkletree.Tree) error {
	b, err := cbor.Marshal(tree.Export())
	if err != nil {
		return fmt.Errorf("store: marshal tree state: %w", err)
	}
	return s.Put(ctx, TreeKey(addressID), b)
}

// LoadTree reads and decodes the commitment tree snapshot for addressID.
func LoadTree(ctx context.Context, s Store, addressID string) (*merkletree.Tree, error) {
	b, err := s.Get(ctx, TreeKey(addressID))
	if err != nil {
		return nil, err
	}
	var exported merkletree.ExportedTree
	if err := cbor.Unmarshal(b, &exported); err != nil {
		return nil, fmt.Errorf("store: unmarshal tree state: %w", err)
	}
	return merkletree.Import(exported), nil
}
