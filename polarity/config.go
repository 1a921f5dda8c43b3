package polarity

import (
	"fmt"

	"github.com/uyouii/waveform-polarity/common"
)

// Thresholds are the z-score cut-offs of the channel rules.
type Thresholds struct {
	ZPBiphasic float64 // zP must exceed this for B
	ZNBiphasic float64 // zN must be below this for B
	ZPPositive float64 // zP must exceed this for P
	ZNNegative float64 // zN must be below this for N
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		ZPBiphasic: DefaultZPBiphasic,
		ZNBiphasic: DefaultZNBiphasic,
		ZPPositive: DefaultZPPositive,
		ZNNegative: DefaultZNNegative,
	}
}

// ThresholdsFromSlice builds thresholds from [zP_B, zN_B, zP_P, zN_N].
// A slice of any other length yields the defaults and false.
func ThresholdsFromSlice(values []float64) (Thresholds, bool) {
	if len(values) != ThresholdCount {
		return DefaultThresholds(), false
	}
	return Thresholds{
		ZPBiphasic: values[0],
		ZNBiphasic: values[1],
		ZPPositive: values[2],
		ZNNegative: values[3],
	}, true
}

func (t Thresholds) Slice() []float64 {
	return []float64{t.ZPBiphasic, t.ZNBiphasic, t.ZPPositive, t.ZNNegative}
}

// BPIWindow is the open interval a biphasic channel's BPI must fall in.
type BPIWindow struct {
	Lower float64
	Upper float64
}

type Config struct {
	UpsampleFactor  int
	BaselineSamples int
	Thresholds      Thresholds
	BPIWindow       BPIWindow
}

func DefaultConfig() Config {
	return Config{
		UpsampleFactor:  UpsampleFactor,
		BaselineSamples: BaselineSamples,
		Thresholds:      DefaultThresholds(),
		BPIWindow: BPIWindow{
			Lower: DefaultBPILower,
			Upper: DefaultBPIUpper,
		},
	}
}

func (c Config) Validate() error {
	if c.UpsampleFactor < 1 {
		return fmt.Errorf("%w: upsample factor %d < 1", common.ErrorInvalidInput, c.UpsampleFactor)
	}
	if c.BPIWindow.Lower >= c.BPIWindow.Upper {
		return fmt.Errorf("%w: empty bpi window (%v, %v)", common.ErrorInvalidInput,
			c.BPIWindow.Lower, c.BPIWindow.Upper)
	}
	return nil
}
