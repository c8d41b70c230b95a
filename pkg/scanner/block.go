package scanner

// CompactOutput carries the on-chain fields a receiver needs to attempt
// trial-decryption: the commitment, the sender's ephemeral key, and the
// encrypted note payload. The outgoing ciphertext is omitted since the
// scanner never needs sender-side recovery (§4.9, §6).
type CompactOutput struct {
	Cv            [32]byte
	Cmu           [32]byte
	EphemeralKey  [32]byte
	EncCiphertext []byte
}

// Transaction is the shielded-relevant slice of a block's transaction: its
// outputs (candidates for trial-decryption) and its nullifiers (candidates
// for cache.mark_spent) (§4.9).
type Transaction struct {
	Outputs    []CompactOutput
	Nullifiers [][32]byte
}

// Block is the unit the scanner consumes from a BlockSource (§4.9).
type Block struct {
	Height uint32
	Hash   [32]byte
	// PrevHash is the retained ancestor's hash this block extends; the
	// scanner compares it against the hash it last accepted at Height-1 to
	// detect a reorg (§4.9).
	PrevHash [32]byte
	Txs      []Transaction
}
