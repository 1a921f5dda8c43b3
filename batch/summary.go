package batch

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/uyouii/waveform-polarity/kde"
	"github.com/uyouii/waveform-polarity/model"
)

var bpiDomain = model.Interval{Lower: -1, Upper: 1}

// TypeSummary describes the main channels of the units of one type.
// Statistics are NaN when the type has no units.
type TypeSummary struct {
	UnitType        model.UnitType
	Count           int
	BPIMedian       float64
	BPIP10          float64
	BPIP90          float64
	MagnitudeMedian float64
	MagnitudeMean   float64
}

type Summary struct {
	Units  int
	Failed int
	ByType []TypeSummary

	// density of the main channel BPI over [-1, 1], empty with fewer than two units
	BPIDensity []model.Density
	BPIMode    float64
	// share of the density with BPI > 0, peak dominated
	BPIPositiveMass float64
}

var summaryTypes = []model.UnitType{
	model.UnitTypePUnit,
	model.UnitTypeBIP,
	model.UnitTypeOther,
	model.UnitTypeUnclassified,
}

// Summarize counts the units per type and describes the BPI and |magnitude|
// of their main channels.
func Summarize(r *Result) *Summary {
	res := &Summary{
		Units:   len(r.Units),
		Failed:  r.FailedCount(),
		BPIMode: math.NaN(),

		BPIPositiveMass: math.NaN(),
	}

	counts := map[model.UnitType]int{}
	bpis := map[model.UnitType][]float64{}
	magnitudes := map[model.UnitType][]float64{}
	allBPIs := []float64{}

	for i := range r.Units {
		u := &r.Units[i]
		if u.Failed() {
			continue
		}
		unitType := u.Polarity.UnitType
		counts[unitType]++

		main, ok := u.Polarity.Main()
		if !ok {
			continue
		}
		if bpi, ok := main.Extrema.BPI.Get(); ok {
			bpis[unitType] = append(bpis[unitType], bpi)
			allBPIs = append(allBPIs, bpi)
		}
		if magnitude, ok := main.Magnitude.Abs().Get(); ok {
			magnitudes[unitType] = append(magnitudes[unitType], magnitude)
		}
	}

	for _, unitType := range summaryTypes {
		res.ByType = append(res.ByType, TypeSummary{
			UnitType:        unitType,
			Count:           counts[unitType],
			BPIMedian:       orNaN(stats.Median(bpis[unitType])),
			BPIP10:          orNaN(stats.Percentile(bpis[unitType], 10)),
			BPIP90:          orNaN(stats.Percentile(bpis[unitType], 90)),
			MagnitudeMedian: orNaN(stats.Median(magnitudes[unitType])),
			MagnitudeMean:   orNaN(stats.Mean(magnitudes[unitType])),
		})
	}

	if k, err := kde.NewBoundedKDE(allBPIs, bpiDomain); err == nil {
		res.BPIDensity = k.Kdensity(kde.DefaultGridSize)
		if mode, ok := kde.Mode(res.BPIDensity); ok {
			res.BPIMode = mode.X
		}
		res.BPIPositiveMass = k.Mass(0, bpiDomain.Upper)
	}
	return res
}

// orNaN maps a stats error, returned for empty input, to NaN.
func orNaN(v float64, err error) float64 {
	if err != nil {
		return math.NaN()
	}
	return v
}
