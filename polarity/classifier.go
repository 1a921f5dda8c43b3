package polarity

import (
	"math"

	"github.com/uyouii/waveform-polarity/model"
)

// ClassifyChannel labels one channel. The rules are tried in order B, P, N and
// the first match wins.
func ClassifyChannel(ex model.ChannelExtrema, cfg Config) model.ChannelPolarity {
	th := cfg.Thresholds
	absN := ex.N.Abs()

	res := model.ChannelPolarity{
		Polarity:  model.PolarityUnclassified,
		Magnitude: model.None(),
		Extrema:   ex,
	}

	switch {
	case ex.ZP.GreaterThan(th.ZPBiphasic) &&
		ex.ZN.LessThan(th.ZNBiphasic) &&
		ex.TimeP.Less(ex.TimeN) &&
		ex.BPI.Between(cfg.BPIWindow.Lower, cfg.BPIWindow.Upper):
		res.Polarity = model.PolarityB
		res.Magnitude = ex.P.Sub(ex.N)

	case ex.ZP.GreaterThan(th.ZPPositive) && (ex.P.Greater(absN) || !ex.N.Valid()):
		res.Polarity = model.PolarityP
		res.Magnitude = ex.P

	case ex.ZN.LessThan(th.ZNNegative) && (absN.Greater(ex.P) || !ex.P.Valid()):
		res.Polarity = model.PolarityN
		res.Magnitude = ex.N
	}
	return res
}

// Aggregate picks the channel with the largest |magnitude| as the main channel
// and derives the unit type from its polarity. Ties go to the lowest channel
// index; unclassified channels are never picked.
func Aggregate(channels []model.ChannelPolarity) (model.OptionalInt, model.UnitType) {
	mainChannel := model.NoneInt()
	best := math.Inf(-1)

	for i, ch := range channels {
		if ch.Polarity == model.PolarityUnclassified {
			continue
		}
		magnitude, ok := ch.Magnitude.Abs().Get()
		if !ok {
			continue
		}
		if !mainChannel.Valid() || magnitude > best {
			mainChannel, best = model.SomeInt(i), magnitude
		}
	}

	idx, ok := mainChannel.Get()
	if !ok {
		return mainChannel, model.UnitTypeUnclassified
	}
	return mainChannel, model.UnitTypeOf(channels[idx].Polarity)
}
