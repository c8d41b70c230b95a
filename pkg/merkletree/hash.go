package merkletree

import "golang.org/x/crypto/blake2s"

// Hash is a 32-byte tree node (leaf commitment or internal hash).
type Hash = [32]byte

func hashPair(left, right Hash) Hash {
	buf := make([]byte, 0, 64)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return blake2s.Sum256(buf)
}

// emptyHash[i] is the hash of an empty subtree of height i; emptyHash[0] is
// the sentinel value for an uncommitted leaf (§4.6).
var emptyHash [Depth + 1]Hash

func init() {
	for i := 1; i <= Depth; i++ {
		emptyHash[i] = hashPair(emptyHash[i-1], emptyHash[i-1])
	}
}
