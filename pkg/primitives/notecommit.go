package primitives

import (
	"encoding/binary"
	"sync"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/field"
)

// Two independent, lazily-derived generator tables back the windowed
// Pedersen sum: tableA covers the diversifier||pk_d half of the message,
// tableB covers the value||rcm half. Splitting the input across two tables
// keeps either table's maximum chunk count small and mirrors how the
// windowed Pedersen hash in the reference material partitions its input
// across more than one generator sequence (§4.3).
var (
	genMu  sync.Mutex
	tableA = map[int]*curve.Point{}
	tableB = map[int]*curve.Point{}
)

func domainTag(tag string) [8]byte {
	var d [8]byte
	copy(d[:], tag)
	return d
}

var (
	tableADomain = domainTag("ShP_cmA0")
	tableBDomain = domainTag("ShP_cmB0")
)

func messageGenerator(table map[int]*curve.Point, domain [8]byte, index int) *curve.Point {
	genMu.Lock()
	defer genMu.Unlock()
	if g, ok := table[index]; ok {
		return g
	}
	var idxBytes [4]byte
	binary.LittleEndian.PutUint32(idxBytes[:], uint32(index))
	g, err := curve.GroupHash(domain, idxBytes[:])
	if err != nil {
		panic("primitives: failed to derive note commitment generator: " + err.Error())
	}
	table[index] = g
	return g
}

// nibbles splits b into big-endian-within-byte 4-bit chunks, high nibble
// first, so position ordering is stable and independent of byte-slice
// length parity.
func nibbles(b []byte) []byte {
	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		out = append(out, c>>4, c&0x0f)
	}
	return out
}

// windowedSum computes Σ [chunks[i]]·table[i] for a generator table that is
// derived (and memoized) on demand from domain.
func windowedSum(chunks []byte, table map[int]*curve.Point, domain [8]byte) *curve.Point {
	acc := curve.Identity()
	for i, c := range chunks {
		if c == 0 {
			continue
		}
		g := messageGenerator(table, domain, i)
		s := field.NewScalarFromBigInt(bigFromByte(c))
		var term curve.Point
		term.ScalarMul(g, s)
		acc.Add(acc, &term)
	}
	return acc
}

// NoteCommit computes cmu = NoteCommit(diversifier, pk_d, value, rcm) as a
// windowed Pedersen sum over two generator tables, returning the compressed
// y-coordinate of the resulting point (§4.3).
func NoteCommit(diversifier [11]byte, pkd *curve.Point, value uint64, rcm *field.Scalar) [32]byte {
	var valueLE [8]byte
	binary.LittleEndian.PutUint64(valueLE[:], value)

	pkdBytes := pkd.Compress()

	partA := make([]byte, 0, 11+32)
	partA = append(partA, diversifier[:]...)
	partA = append(partA, pkdBytes[:]...)

	rcmBytes := rcm.Bytes()
	partB := make([]byte, 0, 8+32)
	partB = append(partB, valueLE[:]...)
	partB = append(partB, rcmBytes[:]...)

	accA := windowedSum(nibbles(partA), tableA, tableADomain)
	accB := windowedSum(nibbles(partB), tableB, tableBDomain)

	var total curve.Point
	total.Add(accA, accB)
	return total.Compress()
}
