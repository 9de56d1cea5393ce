// Package sysinfo describes the host CPU for report headers.
package sysinfo

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
)

// CPU summarizes the processor the measurements ran on.
type CPU struct {
	ModelName string
	Cores     int
	// ReportedMHz is the nominal frequency the OS reports, which can differ
	// from the calibrated cycle rate under scaling or turbo.
	ReportedMHz float64
}

// DescribeCPU queries the host processor. On failure it still returns a
// usable value with the logical core count filled in.
func DescribeCPU() (CPU, error) {
	desc := CPU{Cores: runtime.NumCPU()}

	infos, err := cpu.Info()
	if err != nil {
		return desc, fmt.Errorf("query cpu info: %w", err)
	}
	if len(infos) == 0 {
		return desc, fmt.Errorf("cpu info query returned no entries")
	}

	desc.ModelName = infos[0].ModelName
	desc.ReportedMHz = infos[0].Mhz
	return desc, nil
}

// String renders the CPU description for report headers.
func (c CPU) String() string {
	name := c.ModelName
	if name == "" {
		name = "unknown CPU"
	}
	if c.ReportedMHz > 0 {
		return fmt.Sprintf("%s (%d cores, %.0f MHz reported)", name, c.Cores, c.ReportedMHz)
	}
	return fmt.Sprintf("%s (%d cores)", name, c.Cores)
}
