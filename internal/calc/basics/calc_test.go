package basics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestCalculate(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		wantV float64
		wantI float64
		wantR float64
		wantP float64
	}{
		{
			name:  "voltage and current",
			input: Input{VoltageV: ptr(12), CurrentA: ptr(2)},
			wantV: 12, wantI: 2, wantR: 6, wantP: 24,
		},
		{
			name:  "voltage and resistance",
			input: Input{VoltageV: ptr(230), ResistanceO: ptr(23)},
			wantV: 230, wantI: 10, wantR: 23, wantP: 2300,
		},
		{
			name:  "voltage and power",
			input: Input{VoltageV: ptr(50), PowerW: ptr(100)},
			wantV: 50, wantI: 2, wantR: 25, wantP: 100,
		},
		{
			name:  "current and resistance",
			input: Input{CurrentA: ptr(4), ResistanceO: ptr(10)},
			wantV: 40, wantI: 4, wantR: 10, wantP: 160,
		},
		{
			name:  "current and power",
			input: Input{CurrentA: ptr(2), PowerW: ptr(100)},
			wantV: 50, wantI: 2, wantR: 25, wantP: 100,
		},
		{
			name:  "resistance and power",
			input: Input{ResistanceO: ptr(25), PowerW: ptr(100)},
			wantV: 50, wantI: 2, wantR: 25, wantP: 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantV, res.VoltageV, 0.001)
			assert.InDelta(t, tt.wantI, res.CurrentA, 0.001)
			assert.InDelta(t, tt.wantR, res.ResistanceO, 0.001)
			assert.InDelta(t, tt.wantP, res.PowerW, 0.001)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		input      Input
		wantErrors bool
	}{
		{name: "two quantities", input: Input{VoltageV: ptr(12), CurrentA: ptr(2)}},
		{name: "one quantity", input: Input{VoltageV: ptr(12)}, wantErrors: true},
		{name: "three quantities", input: Input{VoltageV: ptr(12), CurrentA: ptr(2), PowerW: ptr(24)}, wantErrors: true},
		{name: "none", input: Input{}, wantErrors: true},
		{name: "negative value", input: Input{VoltageV: ptr(-12), CurrentA: ptr(2)}, wantErrors: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErrors, Validate(tt.input).HasErrors())
		})
	}
}
