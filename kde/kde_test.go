package kde

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/waveform-polarity/common"
	"github.com/uyouii/waveform-polarity/model"
)

var bpiDomain = model.Interval{Lower: -1, Upper: 1}

func trapezoid(density []model.Density) float64 {
	res := 0.0
	for i := 1; i < len(density); i++ {
		res += (density[i].X - density[i-1].X) * (density[i].Value + density[i-1].Value) / 2
	}
	return res
}

func TestBoundedKDEIntegratesToOne(t *testing.T) {
	k, err := NewBoundedKDE([]float64{-0.5, -0.4, 0.2, 0.3, 0.9}, bpiDomain)
	require.NoError(t, err)

	density := k.Kdensity(2001)
	require.Len(t, density, 2001)
	assert.Equal(t, -1.0, density[0].X)
	assert.Equal(t, 1.0, density[len(density)-1].X)
	assert.InDelta(t, 1, trapezoid(density), 0.02)
	assert.InDelta(t, 1, k.Mass(-1, 1), 0.01)
	assert.InDelta(t, 1, k.Mass(-5, 5), 0.01)
	assert.Equal(t, 0.0, k.Mass(0.5, 0.5))
}

func TestBoundedKDEBoundaryMass(t *testing.T) {
	// everything piled on the upper bound, as with peak-only channels
	k, err := NewBoundedKDE([]float64{1, 1, 1, 0.98, 0.99}, bpiDomain)
	require.NoError(t, err)

	density := k.Kdensity(4001)
	assert.InDelta(t, 1, trapezoid(density), 0.02)

	mode, ok := Mode(density)
	require.True(t, ok)
	assert.InDelta(t, 1, mode.X, 0.05)
	assert.Equal(t, 0.0, k.At(1.5))
	assert.Greater(t, k.Mass(0, 1), 0.99)
}

func TestBoundedKDEMode(t *testing.T) {
	k, err := NewBoundedKDE([]float64{0.45, 0.5, 0.5, 0.55, -0.8, math.NaN(), 3}, bpiDomain)
	require.NoError(t, err)
	assert.Len(t, k.Endog, 5)
	assert.Greater(t, k.BandWidth(), 0.0)

	mode, ok := Mode(k.Kdensity(0))
	require.True(t, ok)
	assert.InDelta(t, 0.5, mode.X, 0.05)
}

func TestBoundedKDEInvalid(t *testing.T) {
	_, err := NewBoundedKDE([]float64{0.1}, bpiDomain)
	assert.True(t, errors.Is(err, common.ErrorInvalidValue))

	_, err = NewBoundedKDE([]float64{0.1, 0.2}, model.Interval{Lower: 1, Upper: 1})
	assert.True(t, errors.Is(err, common.ErrorInvalidValue))

	_, ok := Mode(nil)
	assert.False(t, ok)
}

func TestBandWidthNoSpread(t *testing.T) {
	bw := NewNormalReferenceBandWidth(nil).BandWidth([]float64{0.3, 0.3, 0.3})
	assert.Equal(t, minBandWidth, bw)
}
