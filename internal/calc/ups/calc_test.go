package ups

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		input        Input
		wantRequired float64
		wantSelected float64
	}{
		{
			name:         "8 kW at 0.8 PF with 25% growth",
			input:        Input{LoadWatts: 8000, PowerFactor: 0.8, GrowthPercent: 25},
			wantRequired: 12.5,
			wantSelected: 15,
		},
		{
			name:         "exact frame match",
			input:        Input{LoadWatts: 9000, PowerFactor: 0.9},
			wantRequired: 10,
			wantSelected: 10,
		},
		{
			name:         "small office",
			input:        Input{LoadWatts: 1200, PowerFactor: 1.0},
			wantRequired: 1.2,
			wantSelected: 1.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantRequired, res.RequiredKVA, 0.001)
			assert.Equal(t, tt.wantSelected, res.SelectedKVA)
		})
	}
}

func TestLoadingWarning(t *testing.T) {
	res, err := Calculate(Input{LoadWatts: 8000, PowerFactor: 0.8, GrowthPercent: 25})
	require.NoError(t, err)
	assert.InDelta(t, 83.3, res.LoadingPercent, 0.05)
	assert.NotEmpty(t, res.Warnings)
}

func TestBatteryBank(t *testing.T) {
	res, err := Calculate(Input{
		LoadWatts: 8000, PowerFactor: 0.8,
		BackupMinutes: 30, BatteryV: 48, DepthOfDisch: 0.8,
	})
	require.NoError(t, err)
	// 4000 Wh / (48 V x 0.8 DoD)
	assert.InDelta(t, 104.2, res.BatteryCapacityAh, 0.05)
}

func TestExceedsLargestFrame(t *testing.T) {
	_, err := Calculate(Input{LoadWatts: 600000, PowerFactor: 0.9})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "largest standard UPS rating")
}

func TestValidate(t *testing.T) {
	assert.False(t, Validate(Input{LoadWatts: 8000, PowerFactor: 0.9}).HasErrors())
	assert.True(t, Validate(Input{LoadWatts: 0, PowerFactor: 0.9}).HasErrors())
	assert.True(t, Validate(Input{LoadWatts: 8000, PowerFactor: 0.9, GrowthPercent: 150}).HasErrors())
	assert.True(t, Validate(Input{LoadWatts: 8000, PowerFactor: 0.9, BackupMinutes: 30}).HasErrors())
	assert.Len(t, Validate(Input{LoadWatts: 8000, PowerFactor: 0.7}).Warnings(), 1)
}
