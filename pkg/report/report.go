// Package report turns finished profiler episodes into percentage-annotated
// tables and merges per-goroutine episodes for whole-program views.
package report

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cycleprof/cycleprof/internal/safe"
	"github.com/cycleprof/cycleprof/pkg/cycles"
	"github.com/cycleprof/cycleprof/pkg/profiler"
)

// RemainderLabel names the row holding cycles not attributed to any measured
// region (profiler overhead, untracked code).
const RemainderLabel = "Remainder"

// Row is one category's share of the episode.
type Row struct {
	Name            string
	Hits            uint64
	ExclusiveCycles uint64
	InclusiveCycles uint64
	PctExclusive    float64
	PctInclusive    float64
	BytesProcessed  uint64
}

// GBPerSec returns the row's throughput in gigabytes per second, or 0 when no
// bytes were recorded or the frequency is unknown.
func (r Row) GBPerSec(freq cycles.Frequency) float64 {
	if r.BytesProcessed == 0 || freq <= 0 {
		return 0
	}
	secs := float64(r.InclusiveCycles) / float64(freq)
	if secs <= 0 {
		return 0
	}
	const gigabyte = 1024.0 * 1024.0 * 1024.0
	return float64(r.BytesProcessed) / secs / gigabyte
}

// Report is the read-only summary of one episode (or an aggregate of several).
type Report struct {
	EpisodeID   uuid.UUID
	TotalCycles uint64

	// Frequency is the calibrated cycle rate, or 0 when uncalibrated; it only
	// affects wall-clock and throughput rendering, never the cycle figures.
	Frequency cycles.Frequency

	// Rows holds every category with at least one hit, in declaration order.
	Rows []Row

	// RemainderCycles is TotalCycles minus the sum of exclusive cycles.
	// Signed: measurement overhead inside regions can push it negative.
	RemainderCycles int64
	PctRemainder    float64
}

// Build computes the report for a finished episode. It never mutates the
// snapshot. Pass frequency 0 to report in cycle units only.
func Build(snap *profiler.Snapshot, freq cycles.Frequency) (*Report, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil snapshot")
	}

	rep := &Report{
		EpisodeID:   snap.EpisodeID,
		TotalCycles: snap.TotalCycles,
		Frequency:   freq,
	}

	total := float64(snap.TotalCycles)
	remainder, clamped := safe.Uint64ToInt64(snap.TotalCycles)
	if clamped {
		return nil, fmt.Errorf("episode total %d cycles exceeds signed range for remainder arithmetic", snap.TotalCycles)
	}

	for i, st := range snap.Stats {
		if st.Hits == 0 {
			continue
		}

		name, err := snap.Categories.Name(profiler.Category(i))
		if err != nil {
			return nil, fmt.Errorf("snapshot stats do not match category set: %w", err)
		}

		excl, clamped := safe.Uint64ToInt64(st.ExclusiveCycles)
		if clamped {
			return nil, fmt.Errorf("category %s: %d exclusive cycles exceeds signed range for remainder arithmetic", name, st.ExclusiveCycles)
		}
		remainder -= excl

		row := Row{
			Name:            name,
			Hits:            st.Hits,
			ExclusiveCycles: st.ExclusiveCycles,
			InclusiveCycles: st.InclusiveCycles,
			BytesProcessed:  st.BytesProcessed,
		}
		if total > 0 {
			row.PctExclusive = float64(st.ExclusiveCycles) / total * 100
			row.PctInclusive = float64(st.InclusiveCycles) / total * 100
		}
		rep.Rows = append(rep.Rows, row)
	}

	rep.RemainderCycles = remainder
	if total > 0 {
		rep.PctRemainder = float64(remainder) / total * 100
	}
	return rep, nil
}
