package primitives

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2s"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/field"
)

// NullifierPRF computes nf = BLAKE2s-256("Sapling_Nullifie", nk || position_LE8 || cmu),
// the tag revealed on-chain when a note is spent (§4.3).
func NullifierPRF(nk *curve.Point, position uint64, cmu [32]byte) [32]byte {
	nkBytes := nk.Compress()
	var posLE [8]byte
	binary.LittleEndian.PutUint64(posLE[:], position)

	msg := make([]byte, 0, len("Sapling_Nullifie")+32+8+32)
	msg = append(msg, []byte("Sapling_Nullifie")...)
	msg = append(msg, nkBytes[:]...)
	msg = append(msg, posLE[:]...)
	msg = append(msg, cmu[:]...)
	return blake2s.Sum256(msg)
}

// PRFExpand computes PRF_expand(k, t) = BLAKE2s("Sapling_ExpandSe", k || [t]) ||
// BLAKE2s("Sapling_ExpandSe", k || [t] || [1]), 64 bytes total (§4.3). It is
// used both to derive a note's commitment randomness (t = 0x04) and as a
// general key-stretching primitive.
func PRFExpand(k []byte, t byte) [64]byte {
	first := blake2sWithPrefix("Sapling_ExpandSe", k, []byte{t})
	second := blake2sWithPrefix("Sapling_ExpandSe", k, []byte{t, 0x01})

	var out [64]byte
	copy(out[:32], first[:])
	copy(out[32:], second[:])
	return out
}

func blake2sWithPrefix(prefix string, parts ...[]byte) [32]byte {
	msg := make([]byte, 0, len(prefix)+32)
	msg = append(msg, []byte(prefix)...)
	for _, p := range parts {
		msg = append(msg, p...)
	}
	return blake2s.Sum256(msg)
}

// DeriveCommitmentRandomness computes rcm = PRF_expand(rseed, 0x04) mod r (§3).
func DeriveCommitmentRandomness(rseed []byte) *field.Scalar {
	out := PRFExpand(rseed, 0x04)
	return field.ScalarFromLEBytes(out[:])
}
