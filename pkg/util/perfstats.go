package util

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats records the time taken, and memory allocated, by a run of
// dispatches.
type PerfStats struct {
	// Starting time
	startTime time.Time
	// Starting total memory allocation (bytes)
	startMem uint64
	// Starting number of gc events
	startGc uint32
}

// NewPerfStats takes a snapshot of the current time and allocation counters.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats

	startTime := time.Now()

	runtime.ReadMemStats(&m)

	return &PerfStats{startTime, m.TotalAlloc, m.NumGC}
}

// Elapsed returns the time since this snapshot was taken.
func (p *PerfStats) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

// Log logs the difference between the state now and as it was when the
// snapshot was taken, along with the throughput for n operations.
func (p *PerfStats) Log(prefix string, n int) {
	var m runtime.MemStats

	runtime.ReadMemStats(&m)

	elapsed := p.Elapsed()
	alloc := (m.TotalAlloc - p.startMem) / 1024
	rate := float64(n) / max(elapsed.Seconds(), 1e-9)

	log.WithFields(log.Fields{
		"ops":      n,
		"elapsed":  elapsed,
		"alloc_kb": alloc,
		"gc":       m.NumGC - p.startGc,
	}).Debugf("%s: %.0f ops/s", prefix, rate)
}
