package merkletree

import (
	"crypto/subtle"
	"errors"
)

// Depth is the fixed tree depth (§4.6).
const Depth = 32

// State is the persistence state machine a tree moves through: Fresh on
// construction, Dirty as soon as an append has not yet been synced, Clean
// once synced. Persistence is advisory: losing it only forces a resync,
// never corrupts the in-memory tree (§4.6).
type State int

const (
	Fresh State = iota
	Dirty
	Clean
)

// Tree is an append-only, fixed-depth commitment tree. Every level keeps a
// densely-indexed array of the nodes computed so far, with any index beyond
// what has been filled treated as the precomputed empty-subtree hash for
// that level; this gives O(depth) witness lookups for any previously
// appended leaf without a separate incremental-witness cursor structure
// (see DESIGN.md, pkg/merkletree, for the tradeoff against strict
// frontier-only storage).
type Tree struct {
	depth  int
	size   uint64
	levels [][]Hash // levels[lvl][idx], lvl in [0, depth]
	state  State
}

// New constructs an empty tree of the fixed depth.
func New() *Tree {
	return &Tree{
		depth:  Depth,
		levels: make([][]Hash, Depth+1),
		state:  Fresh,
	}
}

// Size returns the number of leaves appended so far.
func (t *Tree) Size() uint64 { return t.size }

// State returns the tree's current persistence state.
func (t *Tree) State() State { return t.state }

// MarkClean transitions Dirty -> Clean after a successful sync.
func (t *Tree) MarkClean() { t.state = Clean }

func (t *Tree) getNode(level int, index uint64) Hash {
	if level < 0 || level > t.depth {
		return emptyHash[0]
	}
	if index < uint64(len(t.levels[level])) {
		return t.levels[level][index]
	}
	return emptyHash[level]
}

func (t *Tree) setNode(level int, index uint64, h Hash) {
	if index >= uint64(len(t.levels[level])) {
		// Grow via append rather than allocating an exact-size replacement
		// slice: append lets the runtime double the underlying array's
		// capacity, so the copies this triggers amortize to O(1) per call
		// across repeated appends instead of O(size) on every single one
		// (§4.6: Append must stay O(depth) amortized).
		needed := int(index+1) - len(t.levels[level])
		t.levels[level] = append(t.levels[level], make([]Hash, needed)...)
	}
	t.levels[level][index] = h
}

// Append inserts leaf as the next commitment and returns its assigned
// position. O(depth) per call (§4.6).
func (t *Tree) Append(leaf Hash) uint64 {
	position := t.size
	idx := position
	cur := leaf
	for lvl := 0; lvl <= t.depth; lvl++ {
		t.setNode(lvl, idx, cur)
		if lvl == t.depth {
			break
		}
		var left, right Hash
		if idx%2 == 0 {
			left = cur
			right = t.getNode(lvl, idx+1)
		} else {
			left = t.getNode(lvl, idx-1)
			right = cur
		}
		cur = hashPair(left, right)
		idx /= 2
	}
	t.size++
	t.state = Dirty
	return position
}

// Root returns the current root. Every Append leaves levels[depth][0]
// holding the root of the padded-to-2^depth tree, so this is O(1).
func (t *Tree) Root() Hash {
	if t.size == 0 {
		return emptyHash[t.depth]
	}
	return t.getNode(t.depth, 0)
}

// Witness is an authentication path plus the position and anchor it was
// computed against (§3).
type Witness struct {
	AuthPath [Depth]Hash
	Position uint64
	Anchor   Hash
}

// ErrPositionOutOfRange is returned by Witness for a position at or beyond
// the tree's current size.
var ErrPositionOutOfRange = errors.New("merkletree: position out of range")

// Witness computes the authentication path for a previously appended leaf
// at position. O(depth) (§4.6).
func (t *Tree) Witness(position uint64) (*Witness, error) {
	if position >= t.size {
		return nil, ErrPositionOutOfRange
	}
	var w Witness
	idx := position
	for lvl := 0; lvl < t.depth; lvl++ {
		sibling := idx ^ 1
		w.AuthPath[lvl] = t.getNode(lvl, sibling)
		idx /= 2
	}
	w.Position = position
	w.Anchor = t.Root()
	return &w, nil
}

// Verify recomputes the root from (leaf, authPath, position) and compares
// it to anchor in constant time (§4.6).
func Verify(leaf Hash, authPath [Depth]Hash, position uint64, anchor Hash) bool {
	cur := leaf
	idx := position
	for lvl := 0; lvl < Depth; lvl++ {
		if idx%2 == 0 {
			cur = hashPair(cur, authPath[lvl])
		} else {
			cur = hashPair(authPath[lvl], cur)
		}
		idx /= 2
	}
	return subtle.ConstantTimeCompare(cur[:], anchor[:]) == 1
}

// TruncateTo drops every leaf appended after position newSize-1, for reorg
// handling. Implemented by replaying the surviving leaves into a fresh
// tree, which keeps the incremental per-level invariants trivially correct
// at the cost of an O(n) rebuild — truncation is a rare, not hot-path,
// operation (§4.6, §4.9).
func (t *Tree) TruncateTo(newSize uint64) {
	if newSize >= t.size {
		return
	}
	leaves := make([]Hash, newSize)
	for i := uint64(0); i < newSize; i++ {
		leaves[i] = t.getNode(0, i)
	}
	t.levels = make([][]Hash, t.depth+1)
	t.size = 0
	for _, leaf := range leaves {
		t.Append(leaf)
	}
	t.state = Dirty
}
