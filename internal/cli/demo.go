package cli

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cycleprof/cycleprof/internal/sysinfo"
	"github.com/cycleprof/cycleprof/pkg/cycles"
	"github.com/cycleprof/cycleprof/pkg/profiler"
	"github.com/cycleprof/cycleprof/pkg/report"
)

func newDemoCmd() *cobra.Command {
	var (
		scale   time.Duration
		nested  bool
		threads int
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a sample three-phase workload and print its profile",
		Long: `Run three busy phases of increasing length (1x, 2x, 3x the --scale unit)
under the profiler and print the resulting report.

With --nested the phases run inside each other to show parent/child overlap
correction; with --threads each goroutine gets its own profiler and the
snapshots are merged at report time.

Examples:
  # Sequential phases, 100ms base unit
  cycleprof demo

  # Nested phases with a 50ms unit
  cycleprof demo --nested --scale 50ms

  # Four goroutines profiled independently, merged report
  cycleprof demo --threads 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, "demo")
			if err != nil {
				return err
			}

			if scale <= 0 {
				return fmt.Errorf("--scale must be positive")
			}
			if threads < 1 {
				return fmt.Errorf("--threads must be at least 1")
			}

			freq, err := cycles.Calibrate(cfg.Calibration.Sample)
			if err != nil {
				logger.Warn().Err(err).Msg("Calibration failed, reporting in cycle units only")
				freq = 0
			}

			if cpu, err := sysinfo.DescribeCPU(); err == nil {
				logger.Info().Str("cpu", cpu.String()).Msg("Host processor")
			}

			set := profiler.MustCategorySet("Phase1", "Phase2", "Phase3")

			snaps := make([]*profiler.Snapshot, threads)
			var wg sync.WaitGroup
			for i := 0; i < threads; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					snap, err := runDemoEpisode(set, scale, nested, logger)
					if err != nil {
						logger.Error().Err(err).Int("worker", i).Msg("Demo episode failed")
						return
					}
					snaps[i] = snap
				}(i)
			}
			wg.Wait()

			merged := make([]*profiler.Snapshot, 0, threads)
			for _, snap := range snaps {
				if snap != nil {
					merged = append(merged, snap)
				}
			}
			snap, err := report.Aggregate(merged...)
			if err != nil {
				return err
			}

			rep, err := report.Build(snap, freq)
			if err != nil {
				return err
			}
			return rep.Render(os.Stdout, report.RenderOptions{
				Color: colorEnabled(cfg.Report.Color),
			})
		},
	}

	cmd.Flags().DurationVar(&scale, "scale", 100*time.Millisecond, "Base phase duration unit")
	cmd.Flags().BoolVar(&nested, "nested", false, "Nest the phases instead of running them sequentially")
	cmd.Flags().IntVar(&threads, "threads", 1, "Number of goroutines, each with its own profiler")
	return cmd
}

// runDemoEpisode profiles one worker's three phases. Sequential mode mirrors
// the classic 1x/2x/3x workload; nested mode runs Phase3 inside Phase2 inside
// Phase1 so exclusive and inclusive times diverge.
func runDemoEpisode(set *profiler.CategorySet, scale time.Duration, nested bool, logger zerolog.Logger) (*profiler.Snapshot, error) {
	p, err := profiler.New(set)
	if err != nil {
		return nil, err
	}

	phase1, _ := set.Lookup("Phase1")
	phase2, _ := set.Lookup("Phase2")
	phase3, _ := set.Lookup("Phase3")

	if err := p.Begin(); err != nil {
		return nil, err
	}

	if nested {
		span1, err := p.Span(phase1)
		if err != nil {
			return nil, err
		}
		spin(scale)

		span2, err := p.Span(phase2)
		if err != nil {
			return nil, err
		}
		spin(2 * scale)

		span3, err := p.Span(phase3)
		if err != nil {
			return nil, err
		}
		spin(3 * scale)

		for _, span := range []*profiler.Span{span3, span2, span1} {
			if err := span.End(); err != nil {
				return nil, err
			}
		}
	} else {
		for i, phase := range []profiler.Category{phase1, phase2, phase3} {
			if _, err := profiler.Measure(p, phase, func() (struct{}, error) {
				spin(time.Duration(i+1) * scale)
				return struct{}{}, nil
			}); err != nil {
				return nil, err
			}
		}
	}

	if err := p.End(); err != nil {
		return nil, err
	}

	logger.Debug().
		Stringer("episode", p.EpisodeID()).
		Bool("nested", nested).
		Dur("scale", scale).
		Msg("Demo episode complete")
	return p.Snapshot()
}

// spin busy-waits so the cycle counter keeps running; sleeping would idle it
// on some platforms.
func spin(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}
