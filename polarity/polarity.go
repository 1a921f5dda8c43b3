package polarity

import (
	"fmt"

	"github.com/uyouii/waveform-polarity/common"
	"github.com/uyouii/waveform-polarity/model"
	"gonum.org/v1/gonum/mat"
)

// Classify classifies one unit with the default configuration.
// thresholds, when given, must be [zP_B, zN_B, zP_P, zN_N]; a vector of any
// other length is replaced by the defaults instead of being rejected.
func Classify(mean, sd *mat.Dense, thresholds ...float64) (*model.UnitPolarity, error) {
	cfg := DefaultConfig()
	if len(thresholds) > 0 {
		cfg.Thresholds, _ = ThresholdsFromSlice(thresholds)
	}
	return ClassifyWithConfig(mean, sd, cfg)
}

// ClassifyWithConfig classifies one unit. mean and sd are samples x channels.
// Invalid input is rejected before any computation and no partial result is
// returned; degenerate channels come back unclassified.
func ClassifyWithConfig(mean, sd *mat.Dense, cfg Config) (*model.UnitPolarity, error) {
	if err := validateInput(mean, sd); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mean, sd = normalizeShape(mean, sd)

	w2, s2 := Preprocess(mean, sd, cfg)
	candidates := DetectExtrema(w2, s2)

	channels := make([]model.ChannelPolarity, len(candidates))
	for j, cands := range candidates {
		channels[j] = classifyCandidates(cands, cfg)
	}

	mainChannel, unitType := Aggregate(channels)
	return &model.UnitPolarity{
		Channels:    channels,
		MainChannel: mainChannel,
		UnitType:    unitType,
	}, nil
}

func classifyCandidates(cands []model.Extremum, cfg Config) model.ChannelPolarity {
	return ClassifyChannel(SelectExtrema(cands, cfg.UpsampleFactor), cfg)
}

func validateInput(mean, sd *mat.Dense) error {
	if mean == nil || mean.IsEmpty() {
		return fmt.Errorf("%w: missing mean matrix", common.ErrorInvalidInput)
	}
	if sd == nil || sd.IsEmpty() {
		return fmt.Errorf("%w: missing sd matrix", common.ErrorInvalidInput)
	}
	mr, mc := mean.Dims()
	sr, sc := sd.Dims()
	if mr != sr || mc != sc {
		return fmt.Errorf("%w: %w: mean is %dx%d, sd is %dx%d",
			common.ErrorInvalidInput, common.ErrorShapeMismatch, mr, mc, sr, sc)
	}
	return nil
}

// normalizeShape turns a single channel given as a row vector into a column.
// A one-sample waveform has no extrema, so a 1 x k input is always read as
// one channel of k samples.
func normalizeShape(mean, sd *mat.Dense) (*mat.Dense, *mat.Dense) {
	r, c := mean.Dims()
	if r != 1 || c == 1 {
		return mean, sd
	}
	return mat.DenseCopyOf(mean.T()), mat.DenseCopyOf(sd.T())
}
