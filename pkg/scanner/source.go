package scanner

import (
	"context"
	"errors"
)

// ErrNoMoreBlocks signals that a BlockSource has no further blocks right
// now; the scanner treats it as the normal end of a batch, not a failure.
var ErrNoMoreBlocks = errors.New("scanner: no more blocks")

// BlockSource is the external pull callback or chain-data client the
// scanner consumes (§4.9). Implementations may block until a new block is
// available, or return ErrNoMoreBlocks immediately.
type BlockSource interface {
	NextBlock(ctx context.Context) (*Block, error)
}

// SliceBlockSource replays a fixed, in-memory sequence of blocks; it is
// intended for tests and fixture replay.
type SliceBlockSource struct {
	blocks []*Block
	next   int
}

// NewSliceBlockSource constructs a source that yields blocks in order.
func NewSliceBlockSource(blocks []*Block) *SliceBlockSource {
	return &SliceBlockSource{blocks: blocks}
}

// NextBlock returns the next block in the slice, or ErrNoMoreBlocks once
// exhausted.
func (s *SliceBlockSource) NextBlock(ctx context.Context) (*Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.next >= len(s.blocks) {
		return nil, ErrNoMoreBlocks
	}
	b := s.blocks[s.next]
	s.next++
	return b, nil
}
