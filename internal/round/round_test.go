package round

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	assert.Equal(t, 3.46, To(3.456, 2))
	assert.Equal(t, 3.456, To(3.456, 3))
	assert.Equal(t, 62.9, To(62.857142, 1))
	assert.Equal(t, 2.01, To(2.005, 2))
	assert.Equal(t, -1.5, To(-1.45, 1))
}

func TestUpInt(t *testing.T) {
	assert.Equal(t, 7, UpInt(6.14))
	assert.Equal(t, 4, UpInt(4.0))
	assert.Equal(t, 1, UpInt(0.001))
	// 0.1+0.2 in binary is just above 0.3; the epsilon keeps the count at 3.
	assert.Equal(t, 3, UpInt((0.1+0.2)*10))
}

func TestMul(t *testing.T) {
	// 0.87 * 0.70 drifts in binary floating point; decimal keeps it exact.
	assert.Equal(t, 0.609, Mul(0.87, 0.70))
	assert.Equal(t, 24.0, Mul(12, 2))
	assert.Equal(t, 1.0, Mul())
}

func TestDiv(t *testing.T) {
	assert.Equal(t, 2.0, Div(24, 12))
	assert.InDelta(t, 0.333333, Div(1, 3), 1e-6)
}
