package polarity

import (
	"context"
	"fmt"

	"github.com/uyouii/waveform-polarity/common"
	"github.com/uyouii/waveform-polarity/model"
	"github.com/uyouii/waveform-polarity/utils"
	"go.uber.org/zap"
)

// ConfigWithThresholds returns the default config with the given threshold
// vector applied. ok is false when the vector was malformed and the defaults
// were kept.
func ConfigWithThresholds(thresholds []float64) (cfg Config, ok bool) {
	cfg = DefaultConfig()
	if len(thresholds) == 0 {
		return cfg, true
	}
	cfg.Thresholds, ok = ThresholdsFromSlice(thresholds)
	return cfg, ok
}

// ClassifyUnit classifies a unit and logs the outcome.
func ClassifyUnit(ctx context.Context, unit *model.Unit, cfg Config) (res *model.UnitPolarity, err error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("ClassifyUnit recover panic error!", zap.Any("err", r),
				zap.String("panic info", utils.GetPanicInfo()), zap.String("unit", unit.DebugString()))
			res, err = nil, fmt.Errorf("%w: %v", common.ErrorInternal, r)
		}
	}()

	if unit == nil {
		return nil, fmt.Errorf("%w: nil unit", common.ErrorInvalidInput)
	}

	res, err = ClassifyWithConfig(unit.Mean, unit.SD, cfg)
	if err != nil {
		logger.Error("ClassifyWithConfig failed", zap.Error(err), zap.String("unit", unit.DebugString()))
		return nil, err
	}

	logger.Debug("unit classified",
		zap.String("id", unit.ID),
		zap.Int("channels", res.ChannelCount()),
		zap.Any("mainChannel", res.MainChannel),
		zap.Stringer("unitType", res.UnitType))
	return res, nil
}
