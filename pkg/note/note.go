package note

import (
	"crypto/rand"
	"encoding/binary"
	"errors"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/field"
	"github.com/shieldpool/core/pkg/primitives"
)

// PlaintextLen is the full note plaintext size: leadByte(1) || diversifier(11)
// || value_LE(8) || rseed(32) || memo(512) (§6).
const PlaintextLen = 1 + 11 + 8 + 32 + 512

// MemoLen is the memo field size within the full plaintext.
const MemoLen = 512

// LeadByte is the current note plaintext format tag.
const LeadByte = 0x02

// ErrMalformedPlaintext is returned when a decrypted buffer does not match
// the expected plaintext layout (§4.5, §7).
var ErrMalformedPlaintext = errors.New("note: malformed plaintext")

// Note is (diversifier, pk_d, value, rseed); rcm and cmu are derived (§3).
type Note struct {
	Diversifier [11]byte
	Pkd         *curve.Point
	Value       uint64
	Rseed       [32]byte
	Memo        [MemoLen]byte

	// Position is filled once the note is anchored in the commitment tree;
	// nil until then. The nullifier is computed from it by Nullifier.
	Position *uint64
}

// New draws a fresh rseed from the platform CSPRNG and builds a note for
// address at the given value and memo (§4.4).
func New(addr *PaymentAddress, value uint64, memo [MemoLen]byte) (*Note, error) {
	var rseed [32]byte
	if _, err := rand.Read(rseed[:]); err != nil {
		return nil, err
	}
	return &Note{
		Diversifier: addr.Diversifier,
		Pkd:         addr.Pkd,
		Value:       value,
		Rseed:       rseed,
		Memo:        memo,
	}, nil
}

// Rcm computes rcm = PRF_expand(rseed, 0x04) mod r (§3).
func (n *Note) Rcm() *field.Scalar {
	return primitives.DeriveCommitmentRandomness(n.Rseed[:])
}

// Cmu computes cmu = NoteCommit(diversifier, pk_d, value, rcm) (§3, §4.3).
func (n *Note) Cmu() [32]byte {
	return primitives.NoteCommit(n.Diversifier, n.Pkd, n.Value, n.Rcm())
}

// Nullifier computes nf = NullifierPRF(nk, cmu, position); panics if the
// note has not yet been anchored (Position is nil). Callers that need a
// non-panicking variant should check Position first.
func (n *Note) Nullifier(nk *curve.Point) [32]byte {
	if n.Position == nil {
		panic("note: Nullifier called on an unanchored note")
	}
	return primitives.NullifierPRF(nk, *n.Position, n.Cmu())
}

// Plaintext renders the full 564-byte note plaintext layout (§6).
func (n *Note) Plaintext() [PlaintextLen]byte {
	var out [PlaintextLen]byte
	out[0] = LeadByte
	copy(out[1:12], n.Diversifier[:])
	binary.LittleEndian.PutUint64(out[12:20], n.Value)
	copy(out[20:52], n.Rseed[:])
	copy(out[52:], n.Memo[:])
	return out
}

// ParsePlaintext parses a decrypted full note plaintext, rejecting any
// layout that does not match the fixed format (§4.5, §7).
func ParsePlaintext(pkd *curve.Point, b []byte) (*Note, error) {
	if len(b) != PlaintextLen {
		return nil, ErrMalformedPlaintext
	}
	if b[0] != LeadByte {
		return nil, ErrMalformedPlaintext
	}
	n := &Note{Pkd: pkd}
	copy(n.Diversifier[:], b[1:12])
	n.Value = binary.LittleEndian.Uint64(b[12:20])
	copy(n.Rseed[:], b[20:52])
	copy(n.Memo[:], b[52:])
	return n, nil
}
