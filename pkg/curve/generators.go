package curve

import "sync"

// Domain separators for the fixed generators used throughout this module.
// Each is an 8-byte ASCII tag fed to GroupHash; the fixed generators use an
// empty message, and domainDiversifierBase is fed the diversifier. They
// are distinct so that no generator is a known multiple of another (§4.2,
// §4.3).
var (
	domainSpendingKeyBase       = [8]byte{'S', 'h', 'P', '_', 'a', 's', 'k', 'B'}
	domainNullifierKeyBase      = [8]byte{'S', 'h', 'P', '_', 'n', 's', 'k', 'B'}
	domainValueCommitValueBase  = [8]byte{'S', 'h', 'P', '_', 'c', 'v', 'V', 'B'}
	domainValueCommitRandBase   = [8]byte{'S', 'h', 'P', '_', 'c', 'v', 'R', 'B'}
	domainNoteCommitRandBase    = [8]byte{'S', 'h', 'P', '_', 'c', 'm', 'R', 'B'}
	domainDiversifierBase       = [8]byte{'S', 'h', 'P', '_', 'd', 'i', 'v', 'B'}
)

var (
	genOnce                sync.Once
	spendingKeyBase        *Point
	nullifierKeyBase       *Point
	valueCommitValueBase   *Point
	valueCommitRandBase    *Point
	noteCommitRandBase     *Point
)

func initGenerators() {
	genOnce.Do(func() {
		spendingKeyBase = mustGroupHash(domainSpendingKeyBase, nil)
		nullifierKeyBase = mustGroupHash(domainNullifierKeyBase, nil)
		valueCommitValueBase = mustGroupHash(domainValueCommitValueBase, nil)
		valueCommitRandBase = mustGroupHash(domainValueCommitRandBase, nil)
		noteCommitRandBase = mustGroupHash(domainNoteCommitRandBase, nil)
	})
}

func mustGroupHash(domain [8]byte, msg []byte) *Point {
	p, err := GroupHash(domain, msg)
	if err != nil {
		panic("curve: failed to derive fixed generator: " + err.Error())
	}
	return p
}

// SpendingKeyBase returns the fixed generator spend authorization keys
// (ak = [ask]*SpendingKeyBase) are derived from.
func SpendingKeyBase() *Point {
	initGenerators()
	return spendingKeyBase
}

// NullifierKeyBase returns the fixed generator the nullifier deriving key
// (nk = [nsk]*NullifierKeyBase) is derived from.
func NullifierKeyBase() *Point {
	initGenerators()
	return nullifierKeyBase
}

// ValueCommitValueBase returns the fixed generator multiplied by a note's
// value in a Pedersen value commitment.
func ValueCommitValueBase() *Point {
	initGenerators()
	return valueCommitValueBase
}

// ValueCommitRandomnessBase returns the fixed generator multiplied by the
// blinding randomness in a Pedersen value commitment.
func ValueCommitRandomnessBase() *Point {
	initGenerators()
	return valueCommitRandBase
}

// NoteCommitRandomnessBase returns the fixed generator derived from the
// note-commitment randomness domain tag. primitives.NoteCommit does not use
// it: rcm enters the commitment through that function's windowed table.
func NoteCommitRandomnessBase() *Point {
	initGenerators()
	return noteCommitRandBase
}

// DiversifyBase derives the per-diversifier base point g_d = GroupHash(d, diversifier)
// used to build a diversified payment address's first component (§4.4).
func DiversifyBase(diversifier []byte) (*Point, error) {
	return GroupHash(domainDiversifierBase, diversifier)
}
