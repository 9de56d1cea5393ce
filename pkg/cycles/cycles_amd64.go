//go:build amd64

package cycles

// readCycleCounter reads the timestamp counter with RDTSC.
// Implemented in cycles_amd64.s.
//
//go:noescape
func readCycleCounter() uint64
