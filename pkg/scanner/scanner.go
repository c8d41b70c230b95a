package scanner

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/shieldpool/core/pkg/curve"
	"github.com/shieldpool/core/pkg/encryption"
	"github.com/shieldpool/core/pkg/merkletree"
	"github.com/shieldpool/core/pkg/note"
	"github.com/shieldpool/core/pkg/notecache"
)

// DefaultCheckpointInterval is how often the scanner persists the tree
// state during a long batch, in addition to always doing so at batch end
// (§4.9).
const DefaultCheckpointInterval = 1000

// reorgWindow bounds how many trailing heights' block hashes and tree sizes
// the scanner retains for reorg detection. Heights older than the window
// are evicted as each new height is recorded, so memory stays flat across
// an arbitrarily long-running scan instead of growing with every block
// ever processed (§9 Q4).
const reorgWindow = 100

// Progress reports a batch's advancement after each processed block (§4.9).
type Progress struct {
	StartHeight   uint32
	EndHeight     uint32
	CurrentHeight uint32
	NotesFound    uint64
	Percent       float64
}

// ProgressFunc receives a Progress report; nil is a valid no-op callback.
type ProgressFunc func(Progress)

// Scanner drives trial-decryption and tree maintenance for a single
// watched address (§4.9). Not safe for concurrent ScanBatch calls; the
// note cache and tree it owns follow the same single-owner discipline.
type Scanner struct {
	tree    *merkletree.Tree
	cache   *notecache.Cache
	ivk     *note.IncomingViewingKey
	nk      *curve.Point
	addr    notecache.AddressKey
	log     zerolog.Logger
	metrics ScanMetrics

	checkpointInterval uint32
	cancelled          atomic.Bool

	blockHashes  map[uint32][32]byte
	sizeAtHeight map[uint32]uint64
}

// New constructs a scanner over tree/cache for the address derived from
// ivk, using nk to compute nullifiers for newly-owned notes once anchored.
func New(tree *merkletree.Tree, cache *notecache.Cache, ivk *note.IncomingViewingKey, nk *curve.Point, addr notecache.AddressKey, log zerolog.Logger) *Scanner {
	return &Scanner{
		tree:               tree,
		cache:              cache,
		ivk:                ivk,
		nk:                 nk,
		addr:               addr,
		log:                log,
		checkpointInterval: DefaultCheckpointInterval,
		blockHashes:        make(map[uint32][32]byte),
		sizeAtHeight:       make(map[uint32]uint64),
	}
}

// Metrics returns a point-in-time snapshot of the scan counters.
func (s *Scanner) Metrics() ScanMetrics { return s.metrics.Snapshot() }

// Cancel requests cooperative cancellation: the running or next ScanBatch
// call returns after finishing its current block, with no partial
// in-block state (§4.9).
func (s *Scanner) Cancel() { s.cancelled.Store(true) }

type pendingOutput struct {
	out         CompactOutput
	position    uint64
	blockHeight uint32
	txIndex     uint32
	outputIndex uint32
}

// ScanBatch pulls blocks [from, to] from source and processes them in
// order: append every commitment, trial-decrypt every output, mark every
// on-chain nullifier spent, report progress, then compute witnesses for
// newly-owned notes and checkpoint the tree (§4.9, algorithm steps 1-6).
func (s *Scanner) ScanBatch(ctx context.Context, source BlockSource, from, to uint32, onProgress ProgressFunc) (notesFound int, err error) {
	var newlyOwned []*notecache.Entry
	var totalFound uint64
	blocksSinceCheckpoint := uint32(0)

	for height := from; height <= to; height++ {
		if s.cancelled.Load() {
			s.log.Info().Uint32("height", height).Msg("scan cancelled")
			break
		}

		block, srcErr := source.NextBlock(ctx)
		if srcErr == ErrNoMoreBlocks {
			break
		}
		if srcErr != nil {
			return int(totalFound), srcErr
		}

		if block.Height > 0 {
			if prevHash, known := s.blockHashes[block.Height-1]; known && prevHash != block.PrevHash {
				forkHeight := block.Height - 1
				s.log.Warn().Uint32("fork_height", forkHeight).Msg("reorg detected, reverting")
				s.cache.RevertToHeight(forkHeight)
				s.tree.TruncateTo(s.sizeAtHeight[forkHeight])
				for h := range s.blockHashes {
					if h > forkHeight {
						delete(s.blockHashes, h)
						delete(s.sizeAtHeight, h)
					}
				}
			}
		}

		var pending []pendingOutput
		for txIdx, tx := range block.Txs {
			for outIdx, out := range tx.Outputs {
				pos := s.tree.Append(out.Cmu)
				pending = append(pending, pendingOutput{
					out:         out,
					position:    pos,
					blockHeight: block.Height,
					txIndex:     uint32(txIdx),
					outputIndex: uint32(outIdx),
				})
			}
			for _, nf := range tx.Nullifiers {
				s.cache.MarkSpent(nf)
			}
		}

		s.blockHashes[block.Height] = block.Hash
		s.sizeAtHeight[block.Height] = s.tree.Size()
		if block.Height >= reorgWindow {
			evict := block.Height - reorgWindow
			delete(s.blockHashes, evict)
			delete(s.sizeAtHeight, evict)
		}

		found, derr := s.trialDecryptAll(ctx, pending)
		if derr != nil {
			return int(totalFound), derr
		}
		for _, entry := range found {
			s.cache.AddNote(entry)
			newlyOwned = append(newlyOwned, entry)
			totalFound++
			s.metrics.incNotesFound()
		}

		s.metrics.incBlocksScanned()

		if onProgress != nil {
			span := float64(to-from) + 1
			done := float64(block.Height-from) + 1
			percent := 100.0
			if span > 0 {
				percent = 100.0 * done / span
			}
			onProgress(Progress{
				StartHeight:   from,
				EndHeight:     to,
				CurrentHeight: block.Height,
				NotesFound:    totalFound,
				Percent:       percent,
			})
		}

		blocksSinceCheckpoint++
		if blocksSinceCheckpoint >= s.checkpointInterval {
			s.checkpoint(block.Height)
			blocksSinceCheckpoint = 0
		}
	}

	for _, entry := range newlyOwned {
		position := *entry.Note.Position
		w, werr := s.tree.Witness(position)
		if werr != nil {
			s.log.Error().Err(werr).Uint64("position", position).Msg("failed to compute witness for owned note")
			continue
		}
		s.cache.UpdateWitness(entry.Note.Cmu(), w)
	}
	s.checkpoint(to)

	return int(totalFound), nil
}

func (s *Scanner) checkpoint(height uint32) {
	s.cache.UpdateTreeState(notecache.TreeState{
		Root:        s.tree.Root(),
		Size:        s.tree.Size(),
		BlockHeight: height,
	})
}

// trialDecryptAll attempts trial-decryption of every pending output
// concurrently, one goroutine per output joined with errgroup (no
// concurrency limit is set); the tree-append pass has
// already completed sequentially above so concurrent decryption cannot
// disturb append order (§5).
func (s *Scanner) trialDecryptAll(ctx context.Context, pending []pendingOutput) ([]*notecache.Entry, error) {
	results := make([]*notecache.Entry, len(pending))
	g, _ := errgroup.WithContext(ctx)

	for i, po := range pending {
		i, po := i, po
		g.Go(func() error {
			s.metrics.incDecryptAttempts()
			entry := s.tryDecryptOne(po)
			results[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := results[:0]
	for _, e := range results {
		if e != nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Scanner) tryDecryptOne(po pendingOutput) *notecache.Entry {
	enc := &encryption.EncryptedOutput{
		Cv:           po.out.Cv,
		Cmu:          po.out.Cmu,
		EphemeralKey: po.out.EphemeralKey,
	}
	copy(enc.EncCiphertext[:], po.out.EncCiphertext)

	n, err := encryption.TrialDecrypt(s.ivk, enc)
	if err != nil {
		switch err {
		case note.ErrMalformedPlaintext:
			s.metrics.incMalformedPlaintexts()
		case encryption.ErrCommitmentMismatch:
			s.metrics.incCommitmentMismatches()
		default:
			s.metrics.incAuthTagFailures()
		}
		return nil
	}

	position := po.position
	n.Position = &position
	nf := n.Nullifier(s.nk)

	return &notecache.Entry{
		Note:        n,
		Address:     s.addr,
		BlockHeight: po.blockHeight,
		TxIndex:     po.txIndex,
		OutputIndex: po.outputIndex,
		Nullifier:   &nf,
	}
}
