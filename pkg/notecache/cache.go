package notecache

import (
	"sync"

	"github.com/shieldpool/core/pkg/merkletree"
)

// Cache is the note cache owned exclusively by a synchronizer (§4.7, §5).
// It is not safe for concurrent mutation from more than one goroutine;
// concurrent readers between batches are fine, matching the single-owner
// discipline the scanner relies on.
type Cache struct {
	mu sync.Mutex

	byCommitment map[[32]byte]*Entry
	byNullifier  map[[32]byte]*Entry
	byAddress    map[AddressKey][]*Entry

	spent        map[[32]byte]bool
	syncedHeight map[AddressKey]uint32
	treeState    TreeState
}

// New constructs an empty cache.
func New() *Cache {
	return &Cache{
		byCommitment: make(map[[32]byte]*Entry),
		byNullifier:  make(map[[32]byte]*Entry),
		byAddress:    make(map[AddressKey][]*Entry),
		spent:        make(map[[32]byte]bool),
		syncedHeight: make(map[AddressKey]uint32),
	}
}

// AddNote inserts a scanned entry, idempotent on the note's commitment. If
// the note's nullifier (once derivable) is already known-spent, the entry
// is marked spent immediately (§4.7).
func (c *Cache) AddNote(e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cmu := e.Note.Cmu()
	if _, exists := c.byCommitment[cmu]; exists {
		return
	}
	c.byCommitment[cmu] = e
	c.byAddress[e.Address] = append(c.byAddress[e.Address], e)

	if e.Nullifier != nil {
		c.byNullifier[*e.Nullifier] = e
		if c.spent[*e.Nullifier] {
			e.Spent = true
		}
	}
}

// GetNotesFor returns every cached entry for the given address.
func (c *Cache) GetNotesFor(addr AddressKey) []*Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Entry(nil), c.byAddress[addr]...)
}

// GetSpendable returns entries for addr that are unspent, have a witness,
// and meet the confirmation requirement against the current tree height
// (§4.7).
func (c *Cache) GetSpendable(addr AddressKey, minConf uint32) []*Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*Entry
	for _, e := range c.byAddress[addr] {
		if e.Spent || e.Witness == nil {
			continue
		}
		if e.Nullifier != nil && c.spent[*e.Nullifier] {
			continue
		}
		if c.treeState.BlockHeight < e.BlockHeight {
			continue
		}
		confirmations := c.treeState.BlockHeight - e.BlockHeight + 1
		if confirmations < minConf {
			continue
		}
		out = append(out, e)
	}
	return out
}

// MarkSpent adds nf to the spent-nullifier set and flips Spent on any
// matching entry (§4.7).
func (c *Cache) MarkSpent(nf [32]byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spent[nf] = true
	if e, ok := c.byNullifier[nf]; ok {
		e.Spent = true
	}
}

// UpdateWitness attaches or replaces the witness for the entry identified
// by cmu.
func (c *Cache) UpdateWitness(cmu [32]byte, w *merkletree.Witness) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.byCommitment[cmu]; ok {
		e.Witness = w
	}
}

// UpdateTreeState replaces the current commitment tree state snapshot.
func (c *Cache) UpdateTreeState(state TreeState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.treeState = state
}

// TreeState returns the current commitment tree state snapshot.
func (c *Cache) TreeState() TreeState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.treeState
}

// UpdateSyncedHeight records the last height scanned for addr.
func (c *Cache) UpdateSyncedHeight(addr AddressKey, h uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncedHeight[addr] = h
}

// SyncedHeight returns the last recorded synced height for addr.
func (c *Cache) SyncedHeight(addr AddressKey) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.syncedHeight[addr]
}

// RevertToHeight drops every entry with BlockHeight > h, truncates synced
// heights accordingly, and invalidates the tree state (§4.7, §4.9,
// invariant 12).
func (c *Cache) RevertToHeight(h uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for cmu, e := range c.byCommitment {
		if e.BlockHeight > h {
			delete(c.byCommitment, cmu)
			if e.Nullifier != nil {
				delete(c.byNullifier, *e.Nullifier)
			}
		}
	}
	for addr, entries := range c.byAddress {
		kept := entries[:0:0]
		for _, e := range entries {
			if e.BlockHeight <= h {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(c.byAddress, addr)
		} else {
			c.byAddress[addr] = kept
		}
	}
	for addr, synced := range c.syncedHeight {
		if synced > h {
			c.syncedHeight[addr] = h
		}
	}
	c.treeState = TreeState{}
}

// Balance returns (total, spendable) over addr's entries: total is
// the sum of values of unspent entries; spendable is the sum of values of
// entries satisfying GetSpendable for the given address and minConf
// (invariant 11).
func (c *Cache) Balance(addr AddressKey, minConf uint32) (total, spendable uint64) {
	c.mu.Lock()
	entries := append([]*Entry(nil), c.byAddress[addr]...)
	c.mu.Unlock()

	for _, e := range entries {
		spent := e.Spent
		if e.Nullifier != nil {
			c.mu.Lock()
			if c.spent[*e.Nullifier] {
				spent = true
			}
			c.mu.Unlock()
		}
		if !spent {
			total += e.Note.Value
		}
	}
	for _, e := range c.GetSpendable(addr, minConf) {
		spendable += e.Note.Value
	}
	return total, spendable
}
