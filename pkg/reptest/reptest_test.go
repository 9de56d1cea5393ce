package reptest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedTester returns a tester whose cycle source replays runs of the
// given lengths (one Start/Stop pair per run) and whose fault counter never
// moves.
func scriptedTester(runCycles ...uint64) *Tester {
	t := New(time.Hour) // the script ends the loop, not the window
	var now uint64
	reads := 0
	t.now = func() uint64 {
		// Odd reads are Stops: advance by the current run's length.
		if reads%2 == 1 {
			now += runCycles[reads/2]
		}
		reads++
		return now
	}
	t.faults = func() uint64 { return 0 }
	return t
}

func TestTester_MinMaxAvg(t *testing.T) {
	runs := []uint64{500, 200, 900, 400}
	tester := scriptedTester(runs...)

	for i := 0; i < len(runs) && tester.Testing(); i++ {
		tester.Start()
		tester.Stop()
	}
	// One more Testing call folds the final run into the results.
	tester.Testing()
	require.NoError(t, tester.Err())

	results := tester.Results()
	assert.Equal(t, uint64(len(runs)), results.Count)
	assert.Equal(t, uint64(2000), results.TotalCycles)
	assert.Equal(t, uint64(200), results.Min.Cycles)
	assert.Equal(t, uint64(900), results.Max.Cycles)
	assert.InDelta(t, 500.0, results.AvgCycles(), 1e-9)
}

func TestTester_WindowExpires(t *testing.T) {
	tester := New(time.Millisecond)
	tester.now = func() uint64 { return 0 }
	tester.faults = func() uint64 { return 0 }

	time.Sleep(5 * time.Millisecond)
	assert.False(t, tester.Testing())
	assert.NoError(t, tester.Err())
}

func TestTester_UnmatchedStartStop(t *testing.T) {
	tester := scriptedTester(100, 100)

	require.True(t, tester.Testing())
	tester.Start()
	tester.Stop()
	tester.Start() // run left open

	assert.False(t, tester.Testing())
	assert.Error(t, tester.Err())
}

func TestTester_MultipleSectionsPerRun(t *testing.T) {
	// Two Start/Stop pairs in one run: measured sections sum, the gap
	// between them is excluded.
	tester := New(time.Hour)
	script := []uint64{100, 250, 400, 475} // sections: 150 + 75 = 225
	reads := 0
	tester.now = func() uint64 { v := script[reads]; reads++; return v }
	tester.faults = func() uint64 { return 0 }

	require.True(t, tester.Testing())
	tester.Start()
	tester.Stop()
	tester.Start()
	tester.Stop()
	require.True(t, tester.Testing())
	require.NoError(t, tester.Err())

	results := tester.Results()
	assert.Equal(t, uint64(1), results.Count)
	assert.Equal(t, uint64(225), results.TotalCycles)
}

func TestTester_Reset(t *testing.T) {
	tester := scriptedTester(100, 300)
	require.True(t, tester.Testing())
	tester.Start()
	tester.Stop()
	require.True(t, tester.Testing())
	require.Equal(t, uint64(1), tester.Results().Count)

	tester.Reset(time.Hour)
	assert.Equal(t, uint64(0), tester.Results().Count)
	assert.NoError(t, tester.Err())
}

func TestResults_Render(t *testing.T) {
	results := Results{
		Count:           4,
		TotalCycles:     2000,
		TotalPageFaults: 8,
		Min:             Case{Cycles: 200, PageFaults: 1},
		Max:             Case{Cycles: 900, PageFaults: 4},
	}

	var b strings.Builder
	require.NoError(t, results.Render(&b, 1e9, 1024*1024))
	out := b.String()

	assert.Contains(t, out, "Min:")
	assert.Contains(t, out, "Max:")
	assert.Contains(t, out, "Avg:")
	assert.Contains(t, out, "MB/s")
	assert.Contains(t, out, "Runs: 4")
}

func TestResults_RenderEmpty(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Results{}.Render(&b, 0, 0))
	assert.Contains(t, b.String(), "no completed runs")
}

func TestPageFaults_DoesNotPanic(t *testing.T) {
	// Smoke test for the platform hook; the value is monotonic per process.
	first := pageFaults()
	second := pageFaults()
	assert.GreaterOrEqual(t, second, first)
}
