package scanner

import "sync/atomic"

// ScanMetrics holds the scanner's running counters, consumed by
// cmd/shieldsync's health reporting. Grounded in the counter/gauge pattern
// the auction daemon's MetricsCollector uses, narrowed to the fixed set of
// counters a scan actually needs instead of an open-ended label map.
type ScanMetrics struct {
	DecryptAttempts      int64
	AuthTagFailures      int64
	CommitmentMismatches int64
	MalformedPlaintexts  int64
	NotesFound           int64
	BlocksScanned        int64
}

func (m *ScanMetrics) incDecryptAttempts()     { atomic.AddInt64(&m.DecryptAttempts, 1) }
func (m *ScanMetrics) incAuthTagFailures()      { atomic.AddInt64(&m.AuthTagFailures, 1) }
func (m *ScanMetrics) incCommitmentMismatches() { atomic.AddInt64(&m.CommitmentMismatches, 1) }
func (m *ScanMetrics) incMalformedPlaintexts()  { atomic.AddInt64(&m.MalformedPlaintexts, 1) }
func (m *ScanMetrics) incNotesFound()           { atomic.AddInt64(&m.NotesFound, 1) }
func (m *ScanMetrics) incBlocksScanned()        { atomic.AddInt64(&m.BlocksScanned, 1) }

// Snapshot returns a copy safe to read without further synchronization.
func (m *ScanMetrics) Snapshot() ScanMetrics {
	return ScanMetrics{
		DecryptAttempts:      atomic.LoadInt64(&m.DecryptAttempts),
		AuthTagFailures:      atomic.LoadInt64(&m.AuthTagFailures),
		CommitmentMismatches: atomic.LoadInt64(&m.CommitmentMismatches),
		MalformedPlaintexts:  atomic.LoadInt64(&m.MalformedPlaintexts),
		NotesFound:           atomic.LoadInt64(&m.NotesFound),
		BlocksScanned:        atomic.LoadInt64(&m.BlocksScanned),
	}
}
