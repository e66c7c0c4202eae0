package breaker

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContinuousLoadNEC(t *testing.T) {
	// 16 A continuous under NEC must be sized at 125%: 20 A minimum, and the
	// selected rating must come from the standard list at or above that.
	in := Input{
		Standard:    StandardNEC,
		Phase:       PhaseSingle,
		VoltageV:    230,
		LoadKW:      3.68, // 16 A at 230 V, unity PF
		PowerFactor: 1.0,
		Continuous:  true,
	}
	res, err := Calculate(in)
	require.NoError(t, err)

	assert.InDelta(t, 16.0, res.LoadCurrentA, 0.001)
	assert.Equal(t, 1.25, res.SafetyFactor)
	assert.InDelta(t, 20.0, res.AdjustedCurrentA, 0.001)
	assert.Equal(t, 20.0, res.SelectedSizeA)
	assert.Equal(t, 20.0, res.FinalSizeA)
}

func TestIECNoContinuousFactor(t *testing.T) {
	in := Input{
		Standard:    StandardIEC,
		Phase:       PhaseSingle,
		VoltageV:    230,
		LoadKW:      3.68,
		PowerFactor: 1.0,
		Continuous:  true,
	}
	res, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.SafetyFactor)
	assert.Equal(t, 16.0, res.SelectedSizeA)
}

func TestSelectionNeverRoundsDown(t *testing.T) {
	// Sweep load currents; the selected size must always be the smallest
	// tabulated value at or above the adjusted requirement.
	for kw := 0.5; kw <= 250; kw += 3.7 {
		in := Input{Standard: StandardIEC, Phase: PhaseThree, VoltageV: 400, LoadKW: kw, PowerFactor: 0.9}
		res, err := Calculate(in)
		require.NoError(t, err, "load %.1f kW", kw)
		assert.GreaterOrEqual(t, res.SelectedSizeA, res.AdjustedCurrentA, "load %.1f kW", kw)

		// Smallest: the next size down must be insufficient.
		for i, s := range iecSizes {
			if s == res.SelectedSizeA && i > 0 {
				assert.Less(t, iecSizes[i-1], res.AdjustedCurrentA, "load %.1f kW", kw)
			}
		}
	}
}

func TestExceedsLargestSize(t *testing.T) {
	in := Input{Standard: StandardIEC, Phase: PhaseSingle, VoltageV: 230, LoadKW: 300, PowerFactor: 1.0}
	_, err := Calculate(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExceedsLargestSize))
	assert.Contains(t, err.Error(), "1250")
}

func TestVoltageDropSinglePhase(t *testing.T) {
	// 10 A over 50 m of 10 mm2 copper (1.83 ohm/km): VD = I x R x PF.
	in := Input{
		Standard:         StandardIEC,
		Phase:            PhaseSingle,
		VoltageV:         230,
		LoadKW:           2.07, // 10 A at PF 0.9
		PowerFactor:      0.9,
		CircuitLengthM:   50,
		ConductorSizeMM2: 10,
		Material:         "copper",
	}
	res, err := Calculate(in)
	require.NoError(t, err)
	require.NotNil(t, res.VoltageDrop)

	want := 10.0 * (1.83 * 0.050) * 0.9
	assert.InDelta(t, want, res.VoltageDrop.DropV, want*0.001,
		"voltage drop outside the 0.1% accuracy target")
	assert.Equal(t, "compliant", res.VoltageDrop.Status)
}

func TestVoltageDropThreePhase(t *testing.T) {
	// Three phase carries the sqrt(3) factor: with unity PF and 20 kW at
	// 400 V over 100 m of 16 mm2 copper the drop is exactly 5.75 V.
	in := Input{
		Standard:         StandardIEC,
		Phase:            PhaseThree,
		VoltageV:         400,
		LoadKW:           20,
		PowerFactor:      1.0,
		CircuitLengthM:   100,
		ConductorSizeMM2: 16,
		Material:         "copper",
	}
	res, err := Calculate(in)
	require.NoError(t, err)
	require.NotNil(t, res.VoltageDrop)
	assert.InDelta(t, 5.75, res.VoltageDrop.DropV, 5.75*0.001)
	assert.InDelta(t, 1.44, res.VoltageDrop.DropPercent, 0.01)
}

func TestVoltageDropBands(t *testing.T) {
	base := Input{
		Standard:         StandardIEC,
		Phase:            PhaseSingle,
		VoltageV:         230,
		LoadKW:           4.6, // 20 A at unity PF
		PowerFactor:      1.0,
		ConductorSizeMM2: 2.5, // 7.41 ohm/km
		Material:         "copper",
	}
	tests := []struct {
		lengthM    float64
		wantStatus string
	}{
		{40, "compliant"},     // 20 x 0.2964 = 5.93 V = 2.58%
		{60, "marginal"},      // 8.89 V = 3.87%
		{100, "non-compliant"}, // 14.82 V = 6.44%
	}
	for _, tt := range tests {
		in := base
		in.CircuitLengthM = tt.lengthM
		res, err := Calculate(in)
		require.NoError(t, err)
		require.NotNil(t, res.VoltageDrop)
		assert.Equal(t, tt.wantStatus, res.VoltageDrop.Status, "length %.0f m", tt.lengthM)
	}
}

func TestDeratingCascade(t *testing.T) {
	in := Input{
		Standard:        StandardIEC,
		Phase:           PhaseSingle,
		VoltageV:        230,
		LoadKW:          9.2, // 40 A at unity PF
		PowerFactor:     1.0,
		AmbientC:        40,
		GroupedCircuits: 3,
	}
	res, err := Calculate(in)
	require.NoError(t, err)
	require.NotNil(t, res.Derating)

	assert.Equal(t, 0.87, res.Derating.TempFactor)
	assert.Equal(t, 0.70, res.Derating.GroupFactor)
	// Composition is multiplicative, never additive.
	assert.InDelta(t, 0.87*0.70, res.Derating.CombinedFactor, 1e-9)
	assert.InDelta(t, 40.0/0.609, res.Derating.DeratedMinA, 0.01)

	// 40 A base selects 40; derated minimum 65.7 A must re-select 80.
	assert.Equal(t, 40.0, res.SelectedSizeA)
	assert.Equal(t, 80.0, res.FinalSizeA)
	assert.NotEmpty(t, res.Warnings)
}

func TestDeratingAmbientBeyondTable(t *testing.T) {
	in := Input{
		Standard:    StandardIEC,
		Phase:       PhaseSingle,
		VoltageV:    230,
		LoadKW:      2.3,
		PowerFactor: 1.0,
		AmbientC:    65,
	}
	_, err := Calculate(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "correction table")
}

func TestDeterministic(t *testing.T) {
	in := Input{
		Standard: StandardNEC, Phase: PhaseThree, VoltageV: 480, LoadKW: 55,
		PowerFactor: 0.88, Continuous: true, AmbientC: 42, GroupedCircuits: 5,
		CircuitLengthM: 80, ConductorSizeMM2: 35, Material: "copper",
	}
	a, err := Calculate(in)
	require.NoError(t, err)
	b, err := Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestThreePhaseCurrent(t *testing.T) {
	in := Input{Standard: StandardIEC, Phase: PhaseThree, VoltageV: 400, LoadKW: 29.44, PowerFactor: 0.85}
	res, err := Calculate(in)
	require.NoError(t, err)
	want := 29440 / (400 * 0.85 * math.Sqrt(3))
	assert.InDelta(t, want, res.LoadCurrentA, 0.01)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		input      Input
		wantErrors bool
	}{
		{
			name:  "valid",
			input: Input{Standard: StandardNEC, Phase: PhaseSingle, VoltageV: 230, LoadKW: 3, PowerFactor: 0.9},
		},
		{
			name:       "bad standard",
			input:      Input{Standard: "BS", Phase: PhaseSingle, VoltageV: 230, LoadKW: 3, PowerFactor: 0.9},
			wantErrors: true,
		},
		{
			name:       "voltage out of range",
			input:      Input{Standard: StandardIEC, Phase: PhaseSingle, VoltageV: 12, LoadKW: 3, PowerFactor: 0.9},
			wantErrors: true,
		},
		{
			name:       "unknown conductor size",
			input:      Input{Standard: StandardIEC, Phase: PhaseSingle, VoltageV: 230, LoadKW: 3, PowerFactor: 0.9, CircuitLengthM: 10, ConductorSizeMM2: 3},
			wantErrors: true,
		},
		{
			name:       "aluminium below tabulated sizes",
			input:      Input{Standard: StandardIEC, Phase: PhaseSingle, VoltageV: 230, LoadKW: 3, PowerFactor: 0.9, CircuitLengthM: 10, ConductorSizeMM2: 2.5, Material: "aluminium"},
			wantErrors: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErrors, Validate(tt.input).HasErrors())
		})
	}
}
