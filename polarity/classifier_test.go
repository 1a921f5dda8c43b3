package polarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uyouii/waveform-polarity/model"
)

func extrema(p, timeP, zp, n, timeN, zn model.OptionalFloat) model.ChannelExtrema {
	return model.ChannelExtrema{
		P: p, TimeP: timeP, ZP: zp,
		N: n, TimeN: timeN, ZN: zn,
		BPI: BPI(p, n),
	}
}

func TestClassifyChannel(t *testing.T) {
	some, none := model.Some, model.None()

	cases := []struct {
		name          string
		ex            model.ChannelExtrema
		wantPolarity  model.Polarity
		wantMagnitude model.OptionalFloat
	}{
		{
			name:          "biphasic",
			ex:            extrema(some(3), some(10), some(2), some(-4), some(20), some(-2)),
			wantPolarity:  model.PolarityB,
			wantMagnitude: some(7),
		},
		{
			name:          "trough before peak is not biphasic",
			ex:            extrema(some(3), some(20), some(2), some(-4), some(10), some(-2)),
			wantPolarity:  model.PolarityN,
			wantMagnitude: some(-4),
		},
		{
			name:          "equal times are not biphasic",
			ex:            extrema(some(3), some(10), some(2), some(-4), some(10), some(-1.5)),
			wantPolarity:  model.PolarityUnclassified,
			wantMagnitude: none,
		},
		{
			name:          "bpi above window falls through to P",
			ex:            extrema(some(10), some(5), some(5), some(-1), some(8), some(-2)),
			wantPolarity:  model.PolarityP,
			wantMagnitude: some(10),
		},
		{
			name:          "bpi below window falls through to N",
			ex:            extrema(some(1), some(5), some(2), some(-10), some(8), some(-5)),
			wantPolarity:  model.PolarityN,
			wantMagnitude: some(-10),
		},
		{
			name:          "weak biphasic z-score",
			ex:            extrema(some(3), some(10), some(1.25), some(-4), some(20), some(-2)),
			wantPolarity:  model.PolarityN,
			wantMagnitude: some(-4),
		},
		{
			name:          "peak only",
			ex:            extrema(some(2), some(5), some(1.8), none, none, none),
			wantPolarity:  model.PolarityP,
			wantMagnitude: some(2),
		},
		{
			name:          "peak only below threshold",
			ex:            extrema(some(2), some(5), some(1.75), none, none, none),
			wantPolarity:  model.PolarityUnclassified,
			wantMagnitude: none,
		},
		{
			name:          "trough only",
			ex:            extrema(none, none, none, some(-2), some(5), some(-3)),
			wantPolarity:  model.PolarityN,
			wantMagnitude: some(-2),
		},
		{
			name:          "peak smaller than trough is not P",
			ex:            extrema(some(2), some(20), some(4), some(-3), some(5), some(-1)),
			wantPolarity:  model.PolarityUnclassified,
			wantMagnitude: none,
		},
		{
			name:          "nothing",
			ex:            extrema(none, none, none, none, none, none),
			wantPolarity:  model.PolarityUnclassified,
			wantMagnitude: none,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ClassifyChannel(c.ex, DefaultConfig())
			assert.Equal(t, c.wantPolarity, got.Polarity)
			assert.Equal(t, c.wantMagnitude, got.Magnitude)
			assert.Equal(t, c.ex, got.Extrema)
		})
	}
}

func TestClassifyChannelCustomThresholds(t *testing.T) {
	ex := extrema(model.Some(2), model.Some(5), model.Some(3), model.None(), model.None(), model.None())

	cfg := DefaultConfig()
	cfg.Thresholds.ZPPositive = 5

	assert.Equal(t, model.PolarityP, ClassifyChannel(ex, DefaultConfig()).Polarity)
	assert.Equal(t, model.PolarityUnclassified, ClassifyChannel(ex, cfg).Polarity)
}

func channel(p model.Polarity, magnitude model.OptionalFloat) model.ChannelPolarity {
	return model.ChannelPolarity{Polarity: p, Magnitude: magnitude}
}

func TestAggregate(t *testing.T) {
	some, none := model.Some, model.None()

	cases := []struct {
		name     string
		channels []model.ChannelPolarity
		wantMain model.OptionalInt
		wantType model.UnitType
	}{
		{
			name: "largest magnitude wins",
			channels: []model.ChannelPolarity{
				channel(model.PolarityP, some(2)),
				channel(model.PolarityN, some(-5)),
				channel(model.PolarityB, some(4)),
			},
			wantMain: model.SomeInt(1),
			wantType: model.UnitTypeOther,
		},
		{
			name: "tie goes to first channel",
			channels: []model.ChannelPolarity{
				channel(model.PolarityUnclassified, none),
				channel(model.PolarityB, some(3)),
				channel(model.PolarityP, some(3)),
			},
			wantMain: model.SomeInt(1),
			wantType: model.UnitTypeBIP,
		},
		{
			name: "P unit",
			channels: []model.ChannelPolarity{
				channel(model.PolarityUnclassified, none),
				channel(model.PolarityP, some(0.1)),
			},
			wantMain: model.SomeInt(1),
			wantType: model.UnitTypePUnit,
		},
		{
			name: "all unclassified",
			channels: []model.ChannelPolarity{
				channel(model.PolarityUnclassified, none),
				channel(model.PolarityUnclassified, none),
			},
			wantMain: model.NoneInt(),
			wantType: model.UnitTypeUnclassified,
		},
		{
			name:     "no channels",
			channels: []model.ChannelPolarity{},
			wantMain: model.NoneInt(),
			wantType: model.UnitTypeUnclassified,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			main, unitType := Aggregate(c.channels)
			assert.Equal(t, c.wantMain, main)
			assert.Equal(t, c.wantType, unitType)
		})
	}
}
