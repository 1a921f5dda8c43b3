package kde

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

type BandWidth interface {
	BandWidth(sorted []float64) float64
}

// NormalReferenceBandWidth is C * min(sd, IQR/1.349) * n^(-1/5).
type NormalReferenceBandWidth struct {
	kernel Kernel
}

func NewNormalReferenceBandWidth(kernel Kernel) *NormalReferenceBandWidth {
	if kernel == nil {
		kernel = NewGuassianKernel()
	}
	return &NormalReferenceBandWidth{
		kernel: kernel,
	}
}

func (bw *NormalReferenceBandWidth) BandWidth(sorted []float64) float64 {
	sigma := selectSigma(sorted)
	if !(sigma > 0) {
		return minBandWidth
	}
	n := float64(len(sorted))
	return math.Max(bw.kernel.NormalReferenceConstant()*sigma*math.Pow(n, -0.2), minBandWidth)
}

func selectSigma(sorted []float64) float64 {
	const normalize = 1.349

	q75 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	q25 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	iqr := (q75 - q25) / normalize

	stdDev := stat.StdDev(sorted, nil)
	if iqr > 0 && iqr < stdDev {
		return iqr
	}
	return stdDev
}
