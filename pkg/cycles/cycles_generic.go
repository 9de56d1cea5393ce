//go:build !amd64 && !arm64

package cycles

import "time"

// readCycleCounter falls back to wall-clock nanoseconds on platforms without
// an assembly implementation.
func readCycleCounter() uint64 {
	return uint64(time.Now().UnixNano())
}
