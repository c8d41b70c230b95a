package txbuilder

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// sighashDomain is the domain separator folded into the BLAKE2b-256 key,
// mirroring this module's other domain-separated hash constructions in
// pkg/primitives rather than inventing a new scheme for the builder.
const sighashDomain = "ShP_Tx_SigHash00"

// emptySetHash is what hash(x) reduces to for an empty set (§4.10).
var emptySetHash [32]byte

// hashTransparent hashes the concatenation of every raw transparent
// record, or returns the all-zeroes hash for an empty set.
func hashTransparent(items [][]byte) [32]byte {
	if len(items) == 0 {
		return emptySetHash
	}
	h, _ := blake2b.New256([]byte(sighashDomain))
	for _, it := range items {
		h.Write(it)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func hashSpendsWithoutSigs(spends []SpendDescription) [32]byte {
	if len(spends) == 0 {
		return emptySetHash
	}
	h, _ := blake2b.New256([]byte(sighashDomain))
	for i := range spends {
		h.Write(spends[i].bytesWithoutSig())
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func hashOutputs(outputs []OutputDescription) [32]byte {
	if len(outputs) == 0 {
		return emptySetHash
	}
	h, _ := blake2b.New256([]byte(sighashDomain))
	for i := range outputs {
		od := outputs[i].Bytes()
		h.Write(od[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Sighash computes the transaction's signature hash: a domain-separated
// BLAKE2b-256 over header || hash(inputs) || hash(outputs) || lockTime ||
// expiryHeight || valueBalance || hash(spend-descs-without-sigs) ||
// hash(output-descs) (§4.10). "inputs"/"outputs" here are the transparent
// halves of the envelope; the shielded halves are the last two terms.
func (b *Bundle) Sighash() [32]byte {
	tinRaw := make([][]byte, len(b.TransparentIn))
	for i, in := range b.TransparentIn {
		tinRaw[i] = in.Raw
	}
	toutRaw := make([][]byte, len(b.TransparentOut))
	for i, out := range b.TransparentOut {
		toutRaw[i] = out.Raw
	}

	hIn := hashTransparent(tinRaw)
	hOut := hashTransparent(toutRaw)
	hSpends := hashSpendsWithoutSigs(b.Spends)
	hOutputs := hashOutputs(b.Outputs)

	h, _ := blake2b.New256([]byte(sighashDomain))

	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:4], b.Version)
	binary.LittleEndian.PutUint32(header[4:8], b.VersionGroupID)
	h.Write(header[:])

	h.Write(hIn[:])
	h.Write(hOut[:])

	var lockExpiry [8]byte
	binary.LittleEndian.PutUint32(lockExpiry[0:4], b.LockTime)
	binary.LittleEndian.PutUint32(lockExpiry[4:8], b.ExpiryHeight)
	h.Write(lockExpiry[:])

	var vb [8]byte
	binary.LittleEndian.PutUint64(vb[:], uint64(b.ValueBalance))
	h.Write(vb[:])

	h.Write(hSpends[:])
	h.Write(hOutputs[:])

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
