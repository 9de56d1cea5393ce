package safe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUint64ToInt64(t *testing.T) {
	tests := []struct {
		name        string
		val         uint64
		expected    int64
		wantClamped bool
	}{
		{name: "zero", val: 0, expected: 0, wantClamped: false},
		{name: "typical cycle count", val: 2348925345, expected: 2348925345, wantClamped: false},
		{name: "max int64", val: math.MaxInt64, expected: math.MaxInt64, wantClamped: false},
		{name: "overflow clamps", val: math.MaxInt64 + 1, expected: math.MaxInt64, wantClamped: true},
		{name: "max uint64 clamps", val: math.MaxUint64, expected: math.MaxInt64, wantClamped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := Uint64ToInt64(tt.val)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.wantClamped, clamped)
		})
	}
}

func TestDelta(t *testing.T) {
	tests := []struct {
		name     string
		start    uint64
		end      uint64
		expected uint64
		wantOK   bool
	}{
		{name: "forward", start: 100, end: 250, expected: 150, wantOK: true},
		{name: "equal", start: 42, end: 42, expected: 0, wantOK: true},
		{name: "backwards", start: 250, end: 100, expected: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Delta(tt.start, tt.end)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
