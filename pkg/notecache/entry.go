package notecache

import (
	"github.com/shieldpool/core/pkg/merkletree"
	"github.com/shieldpool/core/pkg/note"
)

// AddressKey is the comparable form of a payment address (diversifier ||
// compressed pk_d) used to index cache entries by address.
type AddressKey [43]byte

// KeyForAddress derives the AddressKey for a payment address.
func KeyForAddress(addr *note.PaymentAddress) AddressKey {
	var k AddressKey
	copy(k[:11], addr.Diversifier[:])
	pkd := addr.Pkd.Compress()
	copy(k[11:], pkd[:])
	return k
}

// Entry is a cached scanned note together with its provenance and spend
// state (§3: "Cache entry").
type Entry struct {
	Note        *note.Note
	Address     AddressKey
	BlockHeight uint32
	TxIndex     uint32
	OutputIndex uint32
	IsOutgoing  bool
	Spent       bool
	Witness     *merkletree.Witness
	Nullifier   *[32]byte
}

// TreeState is the commitment tree's externally-visible state (§3).
type TreeState struct {
	Root        [32]byte
	Size        uint64
	BlockHeight uint32
}
