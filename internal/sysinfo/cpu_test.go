package sysinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeCPU_AlwaysHasCores(t *testing.T) {
	desc, _ := DescribeCPU()
	assert.Greater(t, desc.Cores, 0)
}

func TestCPUString(t *testing.T) {
	tests := []struct {
		name     string
		cpu      CPU
		expected string
	}{
		{
			name:     "full description",
			cpu:      CPU{ModelName: "Example CPU", Cores: 8, ReportedMHz: 3200},
			expected: "Example CPU (8 cores, 3200 MHz reported)",
		},
		{
			name:     "no frequency",
			cpu:      CPU{ModelName: "Example CPU", Cores: 4},
			expected: "Example CPU (4 cores)",
		},
		{
			name:     "empty model",
			cpu:      CPU{Cores: 2},
			expected: "unknown CPU (2 cores)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cpu.String())
		})
	}
}
