package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBackupTime(t *testing.T) {
	tests := []struct {
		name      string
		input     Input
		wantHours float64
		wantRate  string
	}{
		{
			name: "48V 200Ah reference system",
			input: Input{
				SystemVoltageV: 48,
				CapacityAh:     200,
				LoadWatts:      2000,
				Efficiency:     0.9,
				AgingFactor:    0.8,
				Chemistry:      ChemistryLeadAcid,
			},
			wantHours: 3.456,
			wantRate:  "C/3",
		},
		{
			name: "12V 100Ah no aging",
			input: Input{
				SystemVoltageV: 12,
				CapacityAh:     100,
				LoadWatts:      120,
				Efficiency:     1.0,
				AgingFactor:    1.0,
				Chemistry:      ChemistryLiIon,
			},
			wantHours: 10,
			wantRate:  "0.10C",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantHours, res.BackupHours, tt.wantHours*0.02,
				"backup time outside the 2% accuracy target")
			assert.InDelta(t, tt.wantHours, res.BackupHours, 0.001)
			assert.Equal(t, tt.wantRate, res.DischargeRate)
		})
	}
}

func TestCalculateEffectiveCapacity(t *testing.T) {
	res, err := Calculate(Input{
		SystemVoltageV: 48, CapacityAh: 200, LoadWatts: 2000,
		Efficiency: 0.9, AgingFactor: 0.8,
	})
	require.NoError(t, err)
	assert.InDelta(t, 160, res.EffectiveCapacityAh, 0.001)
	assert.InDelta(t, 7680, res.StoredEnergyWh, 0.1)
}

func TestCalculateDeterministic(t *testing.T) {
	in := Input{SystemVoltageV: 48, CapacityAh: 200, LoadWatts: 2000, Efficiency: 0.9, AgingFactor: 0.8}
	a, err := Calculate(in)
	require.NoError(t, err)
	b, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		input      Input
		wantErrors bool
		wantWarns  int
	}{
		{
			name:  "valid",
			input: Input{SystemVoltageV: 48, CapacityAh: 200, LoadWatts: 2000, Efficiency: 0.9, AgingFactor: 0.8},
		},
		{
			name:       "voltage out of range",
			input:      Input{SystemVoltageV: 5, CapacityAh: 200, LoadWatts: 2000, Efficiency: 0.9, AgingFactor: 0.8},
			wantErrors: true,
		},
		{
			name:       "efficiency above one",
			input:      Input{SystemVoltageV: 48, CapacityAh: 200, LoadWatts: 2000, Efficiency: 1.2, AgingFactor: 0.8},
			wantErrors: true,
		},
		{
			name:       "unknown chemistry",
			input:      Input{SystemVoltageV: 48, CapacityAh: 200, LoadWatts: 2000, Efficiency: 0.9, AgingFactor: 0.8, Chemistry: "fuelcell"},
			wantErrors: true,
		},
		{
			name:      "aged battery warns but passes",
			input:     Input{SystemVoltageV: 48, CapacityAh: 200, LoadWatts: 2000, Efficiency: 0.9, AgingFactor: 0.6},
			wantWarns: 1,
		},
		{
			name:      "over 1C lead acid discharge warns",
			input:     Input{SystemVoltageV: 12, CapacityAh: 10, LoadWatts: 600, Efficiency: 0.9, AgingFactor: 1.0, Chemistry: ChemistryLeadAcid},
			wantWarns: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Validate(tt.input)
			assert.Equal(t, tt.wantErrors, f.HasErrors())
			assert.Len(t, f.Warnings(), tt.wantWarns)
		})
	}
}
