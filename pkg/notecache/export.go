package notecache

// ExportedEntry is the persistence-friendly form of an Entry: the note is
// flattened to its plain fields since merkletree.Witness and note.Note are
// plain data already, avoiding any export-time dependency on live pointers.
type ExportedEntry struct {
	Diversifier [11]byte
	Pkd         [32]byte
	Value       uint64
	Rseed       [32]byte
	Memo        [512]byte
	Address     AddressKey
	BlockHeight uint32
	TxIndex     uint32
	OutputIndex uint32
	IsOutgoing  bool
	Spent       bool
	HasWitness  bool
	AuthPath    [32][32]byte
	Position    uint64
	Anchor      [32]byte
	HasNullifier bool
	Nullifier   [32]byte
}

// ExportedState is the canonical snapshot written to the `notecache.state`
// persistence key (§6).
type ExportedState struct {
	Entries      []ExportedEntry
	Spent        [][32]byte
	SyncedHeight map[AddressKey]uint32
	TreeState    TreeState
}
