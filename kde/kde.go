package kde

import (
	"fmt"
	"math"
	"sort"

	"github.com/uyouii/waveform-polarity/common"
	"github.com/uyouii/waveform-polarity/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
)

// BoundedKDE is a gaussian kernel density estimate on a closed domain.
// Kernel mass falling outside the domain is reflected back at its bounds.
type BoundedKDE struct {
	Endog  []float64
	Domain model.Interval

	kernel Kernel
	bw     float64
}

// NewBoundedKDE keeps the finite values inside domain; at least MinPointCnt
// of them are required.
func NewBoundedKDE(values []float64, domain model.Interval) (*BoundedKDE, error) {
	if !(domain.Width() > 0) {
		return nil, fmt.Errorf("%w: empty domain [%v, %v]", common.ErrorInvalidValue, domain.Lower, domain.Upper)
	}

	endog := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || !domain.Contains(v) {
			continue
		}
		endog = append(endog, v)
	}
	if len(endog) < MinPointCnt {
		return nil, fmt.Errorf("%w: %d values inside [%v, %v]", common.ErrorInvalidValue,
			len(endog), domain.Lower, domain.Upper)
	}
	sort.Float64s(endog)

	kernel := NewGuassianKernel()
	return &BoundedKDE{
		Endog:  endog,
		Domain: domain,
		kernel: kernel,
		bw:     NewNormalReferenceBandWidth(kernel).BandWidth(endog),
	}, nil
}

func (kde *BoundedKDE) BandWidth() float64 {
	return kde.bw
}

// At evaluates the density at x.
func (kde *BoundedKDE) At(x float64) float64 {
	if !kde.Domain.Contains(x) {
		return 0
	}
	lower, upper := 2*kde.Domain.Lower, 2*kde.Domain.Upper

	sum := 0.0
	for _, xi := range kde.Endog {
		sum += kde.kernel.Shape((x - xi) / kde.bw)
		sum += kde.kernel.Shape((x - (lower - xi)) / kde.bw)
		sum += kde.kernel.Shape((x - (upper - xi)) / kde.bw)
	}
	return sum / (float64(len(kde.Endog)) * kde.bw)
}

// Kdensity evaluates the density on gridSize evenly spaced points spanning the domain.
func (kde *BoundedKDE) Kdensity(gridSize int) []model.Density {
	if gridSize < 2 {
		gridSize = DefaultGridSize
	}
	grid := floats.Span(make([]float64, gridSize), kde.Domain.Lower, kde.Domain.Upper)

	res := make([]model.Density, 0, gridSize)
	for _, x := range grid {
		res = append(res, model.Density{
			X:     x,
			Value: kde.At(x),
		})
	}
	return res
}

// Mass integrates the density over [a, b] clipped to the domain.
func (kde *BoundedKDE) Mass(a, b float64) float64 {
	a = math.Max(a, kde.Domain.Lower)
	b = math.Min(b, kde.Domain.Upper)
	if !(b > a) {
		return 0
	}
	return quad.Fixed(kde.At, a, b, 50, nil, 0)
}

// Mode is the grid point of highest density.
func Mode(density []model.Density) (model.Density, bool) {
	if len(density) == 0 {
		return model.Density{}, false
	}
	values := make([]float64, len(density))
	for i := range density {
		values[i] = density[i].Value
	}
	return density[floats.MaxIdx(values)], true
}
