package main

import (
	"time"

	"github.com/shieldpool/core/pkg/scanner"
)

// HealthStatus mirrors the teacher binary's tri-state health model
// (cmd/auctiond/health.go), reused here to report scan progress instead of
// auction component checks.
type HealthStatus string

const (
	Healthy   HealthStatus = "healthy"
	Degraded  HealthStatus = "degraded"
	Unhealthy HealthStatus = "unhealthy"
)

// SyncHealth is shieldsync's health snapshot: scan progress plus the raw
// scanner counters, enough for an operator or a driving process to decide
// whether the sync is making progress.
type SyncHealth struct {
	Status      HealthStatus    `json:"status"`
	Uptime      time.Duration   `json:"uptime"`
	LastHeight  uint32          `json:"last_height"`
	NotesFound  uint64          `json:"notes_found"`
	Metrics     scanner.ScanMetrics `json:"metrics"`
}

// HealthChecker tracks shieldsync's own uptime and the last scanner
// snapshot handed to it after each batch.
type HealthChecker struct {
	startTime time.Time
}

// NewHealthChecker returns a HealthChecker whose uptime starts now.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{startTime: time.Now()}
}

// Snapshot derives a SyncHealth from the scanner's current metrics. A scan
// that has seen any AuthTagFailures/CommitmentMismatches without a matching
// rise in NotesFound is still Healthy: those counters increment on every
// non-owned output by design (§7), not just on faults.
func (hc *HealthChecker) Snapshot(lastHeight uint32, m scanner.ScanMetrics) SyncHealth {
	status := Healthy
	if m.BlocksScanned == 0 {
		status = Degraded
	}
	return SyncHealth{
		Status:     status,
		Uptime:     time.Since(hc.startTime),
		LastHeight: lastHeight,
		NotesFound: uint64(m.NotesFound),
		Metrics:    m,
	}
}
