package notecache

import (
	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/merkletree"
	"github.com/shieldpool/core/pkg/note"
)

// Export returns a canonical, pointer-free snapshot of the cache suitable
// for CBOR persistence (§4.7, §6).
func (c *Cache) Export() ExportedState {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out ExportedState
	out.TreeState = c.treeState
	out.SyncedHeight = make(map[AddressKey]uint32, len(c.syncedHeight))
	for k, v := range c.syncedHeight {
		out.SyncedHeight[k] = v
	}
	for nf := range c.spent {
		out.Spent = append(out.Spent, nf)
	}

	for _, e := range c.byCommitment {
		ee := ExportedEntry{
			Diversifier: e.Note.Diversifier,
			Value:       e.Note.Value,
			Rseed:       e.Note.Rseed,
			Memo:        e.Note.Memo,
			Address:     e.Address,
			BlockHeight: e.BlockHeight,
			TxIndex:     e.TxIndex,
			OutputIndex: e.OutputIndex,
			IsOutgoing:  e.IsOutgoing,
			Spent:       e.Spent,
		}
		ee.Pkd = e.Note.Pkd.Compress()
		if e.Witness != nil {
			ee.HasWitness = true
			ee.AuthPath = e.Witness.AuthPath
			ee.Position = e.Witness.Position
			ee.Anchor = e.Witness.Anchor
		}
		if e.Nullifier != nil {
			ee.HasNullifier = true
			ee.Nullifier = *e.Nullifier
		}
		out.Entries = append(out.Entries, ee)
	}
	return out
}

// Import rebuilds a cache from a snapshot produced by Export.
func Import(state ExportedState) (*Cache, error) {
	c := New()
	c.treeState = state.TreeState
	for k, v := range state.SyncedHeight {
		c.syncedHeight[k] = v
	}
	for _, nf := range state.Spent {
		c.spent[nf] = true
	}

	for _, ee := range state.Entries {
		pkd, err := curve.Decompress(ee.Pkd[:])
		if err != nil {
			return nil, err
		}
		n := &note.Note{
			Diversifier: ee.Diversifier,
			Pkd:         pkd,
			Value:       ee.Value,
			Rseed:       ee.Rseed,
			Memo:        ee.Memo,
		}
		e := &Entry{
			Note:        n,
			Address:     ee.Address,
			BlockHeight: ee.BlockHeight,
			TxIndex:     ee.TxIndex,
			OutputIndex: ee.OutputIndex,
			IsOutgoing:  ee.IsOutgoing,
			Spent:       ee.Spent,
		}
		if ee.HasWitness {
			e.Witness = &merkletree.Witness{
				AuthPath: ee.AuthPath,
				Position: ee.Position,
				Anchor:   ee.Anchor,
			}
			n.Position = &ee.Position
		}
		if ee.HasNullifier {
			nf := ee.Nullifier
			e.Nullifier = &nf
		}

		cmu := n.Cmu()
		c.byCommitment[cmu] = e
		c.byAddress[e.Address] = append(c.byAddress[e.Address], e)
		if e.Nullifier != nil {
			c.byNullifier[*e.Nullifier] = e
		}
	}
	return c, nil
}
