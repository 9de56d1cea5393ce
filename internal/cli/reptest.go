package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cycleprof/cycleprof/pkg/cycles"
	"github.com/cycleprof/cycleprof/pkg/reptest"
)

func newRepTestCmd() *cobra.Command {
	var (
		window time.Duration
		size   int64
		path   string
	)

	cmd := &cobra.Command{
		Use:   "reptest",
		Short: "Repetition-test a buffer fill or file read",
		Long: `Run a block of work repeatedly until no faster run has been seen for the
window, then print min/max/avg cycles, throughput, and page fault counts.

Without --file the measured block fills a --size byte buffer; with --file it
reads the file with os.ReadFile. The window restarts whenever a new fastest
run appears, so warm-cache behavior gets fully explored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, "reptest")
			if err != nil {
				return err
			}

			if path == "" && size <= 0 {
				return fmt.Errorf("--size must be positive when no --file is given")
			}

			freq, err := cycles.Calibrate(cfg.Calibration.Sample)
			if err != nil {
				logger.Warn().Err(err).Msg("Calibration failed, reporting in cycle units only")
				freq = 0
			}

			bytes := uint64(size)
			if path != "" {
				info, err := os.Stat(path)
				if err != nil {
					return fmt.Errorf("stat %s: %w", path, err)
				}
				bytes = uint64(info.Size())
				logger.Info().Str("file", path).Uint64("bytes", bytes).Msg("Repetition-testing file read")
			} else {
				logger.Info().Uint64("bytes", bytes).Msg("Repetition-testing buffer fill")
			}

			tester := reptest.New(window)
			for tester.Testing() {
				if path != "" {
					tester.Start()
					data, err := os.ReadFile(path)
					tester.Stop()
					if err != nil {
						return fmt.Errorf("read %s: %w", path, err)
					}
					if uint64(len(data)) != bytes {
						return fmt.Errorf("short read: %d of %d bytes", len(data), bytes)
					}
				} else {
					tester.Start()
					buf := make([]byte, bytes)
					for i := range buf {
						buf[i] = byte(i)
					}
					tester.Stop()
					if uint64(len(buf)) != bytes {
						return fmt.Errorf("buffer fill produced %d of %d bytes", len(buf), bytes)
					}
				}
			}
			if err := tester.Err(); err != nil {
				return err
			}

			return tester.Results().Render(os.Stdout, freq, bytes)
		},
	}

	cmd.Flags().DurationVar(&window, "window", 5*time.Second, "Stop after this long without a new fastest run")
	cmd.Flags().Int64Var(&size, "size", 64*1024*1024, "Buffer size in bytes for the fill workload")
	cmd.Flags().StringVar(&path, "file", "", "Repetition-test reading this file instead")
	return cmd
}
