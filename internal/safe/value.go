// Package safe provides checked integer conversions for cycle arithmetic.
package safe

import "math"

// Uint64ToInt64 converts a cycle count to int64, clamping to math.MaxInt64 if
// overflow would occur.
// Returns the converted value and a boolean indicating whether clamping occurred.
func Uint64ToInt64(val uint64) (int64, bool) {
	if val > math.MaxInt64 {
		return math.MaxInt64, true
	}
	return int64(val), false
}

// Delta returns end-start for two counter samples. When the counter appears
// to have gone backwards (wraparound or cross-core drift), it returns 0 and
// false instead of an enormous unsigned difference.
func Delta(start, end uint64) (uint64, bool) {
	if end < start {
		return 0, false
	}
	return end - start, true
}
