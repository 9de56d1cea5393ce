//go:build linux

package reptest

import "golang.org/x/sys/unix"

// pageFaults returns the process's cumulative page fault count (minor plus
// major) from rusage.
func pageFaults() uint64 {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	return uint64(ru.Minflt) + uint64(ru.Majflt)
}
