package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cycleprof/cycleprof/internal/sysinfo"
	"github.com/cycleprof/cycleprof/pkg/cycles"
)

func newCalibrateCmd() *cobra.Command {
	var sample time.Duration

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Measure the cycle counter frequency against the wall clock",
		Long: `Busy-wait for the sample window and report the measured cycle frequency.

The engine itself operates purely in cycle units; this ratio is only needed to
print wall-clock durations next to cycle counts. Note that the measured rate
is the counter's rate, which on modern hardware is the constant TSC rate, not
the momentary core clock.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, "calibrate")
			if err != nil {
				return err
			}

			if sample == 0 {
				sample = cfg.Calibration.Sample
			}

			if cpu, err := sysinfo.DescribeCPU(); err == nil {
				logger.Info().Str("cpu", cpu.String()).Msg("Host processor")
			} else {
				logger.Debug().Err(err).Msg("Could not describe host processor")
			}

			logger.Debug().Dur("sample", sample).Msg("Calibrating cycle counter")
			start := time.Now()
			freq, err := cycles.Calibrate(sample)
			if err != nil {
				return err
			}

			logger.Info().
				Dur("sample", sample).
				Dur("took", time.Since(start)).
				Float64("hz", float64(freq)).
				Msg("Calibration complete")

			cmd.Printf("Calculated cycle frequency: %s (%.0f Hz)\n", freq, float64(freq))
			return nil
		},
	}

	cmd.Flags().DurationVar(&sample, "sample", 0, "Busy-wait window (defaults to the configured value)")
	return cmd
}
