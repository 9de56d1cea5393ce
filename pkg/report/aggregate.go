package report

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/cycleprof/cycleprof/pkg/profiler"
)

// Aggregate merges snapshots from independent per-goroutine profilers into a
// single whole-program snapshot. All input episodes must already have ended;
// merging only happens at report time, never during measurement.
//
// Stats are summed per category and episode totals are summed, so percentages
// in the resulting report are shares of combined CPU time across goroutines,
// not of wall-clock time. Every snapshot must use the same category set (the
// same *CategorySet or one with identical names in identical order).
func Aggregate(snaps ...*profiler.Snapshot) (*profiler.Snapshot, error) {
	if len(snaps) == 0 {
		return nil, fmt.Errorf("aggregate requires at least one snapshot")
	}

	base := snaps[0]
	if base == nil {
		return nil, fmt.Errorf("snapshot 0 is nil")
	}
	merged := &profiler.Snapshot{
		EpisodeID:  uuid.New(),
		Categories: base.Categories,
		Stats:      make([]profiler.TimerStats, len(base.Stats)),
	}

	baseNames := base.Categories.Names()
	for i, snap := range snaps {
		if snap == nil {
			return nil, fmt.Errorf("snapshot %d is nil", i)
		}
		if snap.Categories != base.Categories && !slices.Equal(snap.Categories.Names(), baseNames) {
			return nil, fmt.Errorf("snapshot %d uses a different category set", i)
		}

		merged.TotalCycles += snap.TotalCycles
		for c, st := range snap.Stats {
			merged.Stats[c].Hits += st.Hits
			merged.Stats[c].InclusiveCycles += st.InclusiveCycles
			merged.Stats[c].ExclusiveCycles += st.ExclusiveCycles
			merged.Stats[c].BytesProcessed += st.BytesProcessed
		}
	}
	return merged, nil
}
