package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalFloatPropagation(t *testing.T) {
	a, b, none := Some(3), Some(-2), None()

	assert.Equal(t, Some(5), a.Sub(b))
	assert.Equal(t, Some(1), a.Add(b))
	assert.Equal(t, Some(-1.5), a.Div(b))
	assert.Equal(t, Some(2), b.Abs())

	assert.False(t, a.Sub(none).Valid())
	assert.False(t, none.Add(a).Valid())
	assert.False(t, none.Div(a).Valid())
	assert.False(t, none.Abs().Valid())
	assert.False(t, Some(0).Div(Some(0)).Valid())
	assert.True(t, math.IsInf(a.Div(Some(0)).Float64(), 1))
}

func TestOptionalFloatComparisons(t *testing.T) {
	a, none := Some(1), None()

	assert.True(t, a.GreaterThan(0.5))
	assert.False(t, a.GreaterThan(1))
	assert.True(t, a.LessThan(2))
	assert.True(t, a.Between(0, 2))
	assert.False(t, a.Between(1, 2))

	assert.False(t, none.GreaterThan(math.Inf(-1)))
	assert.False(t, none.LessThan(math.Inf(1)))
	assert.False(t, none.Between(math.Inf(-1), math.Inf(1)))
	assert.False(t, a.Greater(none))
	assert.False(t, none.Less(a))
}

func TestOptionalFloatNaN(t *testing.T) {
	f := Some(math.NaN())
	assert.False(t, f.Valid())
	assert.True(t, math.IsNaN(f.Float64()))

	_, ok := f.Get()
	assert.False(t, ok)
}

func TestOptionalJSON(t *testing.T) {
	type doc struct {
		A OptionalFloat `json:"a"`
		B OptionalFloat `json:"b"`
		C OptionalInt   `json:"c"`
		D OptionalInt   `json:"d"`
	}

	data, err := json.Marshal(doc{A: Some(1.5), B: None(), C: SomeInt(2), D: NoneInt()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.5,"b":null,"c":2,"d":null}`, string(data))

	var got doc
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, Some(1.5), got.A)
	assert.False(t, got.B.Valid())
	assert.Equal(t, SomeInt(2), got.C)
	assert.False(t, got.D.Valid())
}

func TestUnitPolarityAccessors(t *testing.T) {
	u := &UnitPolarity{
		Channels: []ChannelPolarity{
			{Polarity: PolarityB, Magnitude: Some(4), Extrema: ChannelExtrema{BPI: Some(0.1)}},
			{Polarity: PolarityUnclassified, Magnitude: None(), Extrema: ChannelExtrema{BPI: None()}},
		},
		MainChannel: SomeInt(0),
		UnitType:    UnitTypeBIP,
	}

	assert.Equal(t, 0.0, u.PolarityValues()[0])
	assert.True(t, math.IsNaN(u.PolarityValues()[1]))
	assert.Equal(t, 4.0, u.Magnitudes()[0])
	assert.True(t, math.IsNaN(u.BPIs()[1]))

	main, ok := u.Main()
	require.True(t, ok)
	assert.Equal(t, PolarityB, main.Polarity)
	assert.Equal(t, 3.0, u.UnitType.Code())

	var nilUnit *UnitPolarity
	assert.Equal(t, 0, nilUnit.ChannelCount())
	_, ok = nilUnit.Main()
	assert.False(t, ok)
}

func TestUnitTypeOf(t *testing.T) {
	assert.Equal(t, UnitTypePUnit, UnitTypeOf(PolarityP))
	assert.Equal(t, UnitTypeBIP, UnitTypeOf(PolarityB))
	assert.Equal(t, UnitTypeOther, UnitTypeOf(PolarityN))
	assert.Equal(t, UnitTypeUnclassified, UnitTypeOf(PolarityUnclassified))
}
