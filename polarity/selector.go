package polarity

import (
	"github.com/uyouii/waveform-polarity/model"
)

// SelectExtrema reduces the candidates of one channel to its largest peak and
// deepest trough and derives their times, z-scores and the BPI.
// Ties go to the earliest candidate.
func SelectExtrema(cands []model.Extremum, usf int) model.ChannelExtrema {
	peak, hasPeak := selectExtremum(cands, model.Peak)
	trough, hasTrough := selectExtremum(cands, model.Trough)

	res := model.ChannelExtrema{
		P:     model.None(),
		TimeP: model.None(),
		ZP:    model.None(),
		N:     model.None(),
		TimeN: model.None(),
		ZN:    model.None(),
	}
	if hasPeak {
		res.P = model.Some(peak.Value)
		res.TimeP = model.Some(sampleTime(peak.Index, usf))
		res.ZP = res.P.Div(model.Some(peak.SD))
	}
	if hasTrough {
		res.N = model.Some(trough.Value)
		res.TimeN = model.Some(sampleTime(trough.Index, usf))
		res.ZN = res.N.Div(model.Some(trough.SD))
	}
	res.BPI = BPI(res.P, res.N)
	return res
}

func selectExtremum(cands []model.Extremum, kind model.ExtremumKind) (model.Extremum, bool) {
	var best model.Extremum
	found := false
	for _, c := range cands {
		if c.Kind != kind {
			continue
		}
		better := (kind == model.Peak && c.Value > best.Value) ||
			(kind == model.Trough && c.Value < best.Value)
		if !found || better {
			best, found = c, true
		}
	}
	return best, found
}

// BPI is (P-|N|)/(P+|N|), +1 with only a peak, -1 with only a trough,
// absent with neither.
func BPI(p, n model.OptionalFloat) model.OptionalFloat {
	switch {
	case p.Valid() && n.Valid():
		absN := n.Abs()
		return p.Sub(absN).Div(p.Add(absN))
	case p.Valid():
		return model.Some(1)
	case n.Valid():
		return model.Some(-1)
	}
	return model.None()
}

// sampleTime maps an index of the upsampled grid back to 0-based original
// sample units.
func sampleTime(index, usf int) float64 {
	return float64(index+1)/float64(usf) - 1
}
