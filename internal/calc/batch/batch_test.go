package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Ampere/internal/calc/breaker"
)

func TestCalculateBreaker(t *testing.T) {
	in := BreakerBatchInput{Items: []breaker.Input{
		{Standard: breaker.StandardNEC, Phase: breaker.PhaseSingle, VoltageV: 230, LoadKW: 3.312, PowerFactor: 0.9, Continuous: true},
		{Standard: breaker.StandardIEC, Phase: breaker.PhaseSingle, VoltageV: 230, LoadKW: 0, PowerFactor: 0.9},
		{Standard: breaker.StandardIEC, Phase: breaker.PhaseThree, VoltageV: 400, LoadKW: 15, PowerFactor: 0.85},
	}}

	out, err := CalculateBreaker(in)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	require.Len(t, out.Results, 3)

	first := out.Results[0]
	assert.Equal(t, 0, first.Index)
	assert.Empty(t, first.Error)
	require.NotNil(t, first.Result)
	assert.InDelta(t, 20, first.Result.SelectedSizeA, 0.001)

	second := out.Results[1]
	assert.Equal(t, 1, second.Index)
	assert.Nil(t, second.Result)
	assert.Contains(t, second.Error, "load_kw")

	third := out.Results[2]
	assert.Empty(t, third.Error)
	require.NotNil(t, third.Result)
	assert.Greater(t, third.Result.SelectedSizeA, 0.0)
}

func TestCalculateBreakerEmpty(t *testing.T) {
	_, err := CalculateBreaker(BreakerBatchInput{})
	assert.Error(t, err)
}

func TestCalculateBreakerDomainError(t *testing.T) {
	out, err := CalculateBreaker(BreakerBatchInput{Items: []breaker.Input{
		{Standard: breaker.StandardIEC, Phase: breaker.PhaseSingle, VoltageV: 230, LoadKW: 5000, PowerFactor: 1},
	}})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Count)
	require.Len(t, out.Results, 1)
	assert.Contains(t, out.Results[0].Error, "largest")
}
