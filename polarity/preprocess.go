package polarity

import (
	"math"

	"github.com/uyouii/waveform-polarity/utils"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// minSplineNodes is the smallest node count the not-a-knot spline accepts.
const minSplineNodes = 4

// Preprocess baseline-corrects the mean waveform, then upsamples mean and sd
// independently and blanks the edges of both.
//
// The sd is spline-resampled in its own right rather than propagated from the
// interpolation of the mean. This is an approximation, kept because the
// classification thresholds were calibrated against it.
func Preprocess(mean, sd *mat.Dense, cfg Config) (w2, s2 *mat.Dense) {
	w := RemoveBaseline(mean, cfg.BaselineSamples)

	w2 = Upsample(w, cfg.UpsampleFactor)
	s2 = Upsample(sd, cfg.UpsampleFactor)

	SuppressEdges(w2, cfg.UpsampleFactor)
	SuppressEdges(s2, cfg.UpsampleFactor)
	return w2, s2
}

// RemoveBaseline subtracts from every channel the mean of its first bls samples.
// bls is clamped to [1, samples]; NaN samples in the window are ignored.
func RemoveBaseline(w *mat.Dense, bls int) *mat.Dense {
	m, n := w.Dims()
	bls = utils.Clamp(bls, 1, m)

	res := mat.NewDense(m, n, nil)
	col := make([]float64, m)
	for j := 0; j < n; j++ {
		mat.Col(col, j, w)
		baseline := finiteMean(col[:bls])
		for i := range col {
			col[i] -= baseline
		}
		res.SetCol(j, col)
	}
	return res
}

// Upsample resamples every channel by the integer factor usf with a cubic spline.
// Original sample j sits at position usf*(j+1) of the 1-based dense grid and the
// result holds the positions 1..usf*m. Positions outside the span of finite
// samples are NaN.
func Upsample(w *mat.Dense, usf int) *mat.Dense {
	m, n := w.Dims()
	m2 := m * usf

	res := mat.NewDense(m2, n, nil)
	col := make([]float64, m)
	for j := 0; j < n; j++ {
		mat.Col(col, j, w)
		res.SetCol(j, upsampleChannel(col, usf))
	}
	return res
}

func upsampleChannel(ys []float64, usf int) []float64 {
	m2 := len(ys) * usf
	res := nanSlice(m2)

	xs, fs := []float64{}, []float64{}
	for j, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		xs = append(xs, float64(usf*(j+1)))
		fs = append(fs, y)
	}
	if len(xs) < 2 {
		return res
	}

	predictor := newPredictor(len(xs))
	if err := predictor.Fit(xs, fs); err != nil {
		return res
	}

	lower, upper := xs[0], xs[len(xs)-1]
	for k := 0; k < m2; k++ {
		x := float64(k + 1)
		if x < lower || x > upper {
			continue
		}
		res[k] = predictor.Predict(x)
	}
	return res
}

func newPredictor(nodes int) interp.FittablePredictor {
	if nodes < minSplineNodes {
		return &interp.PiecewiseLinear{}
	}
	return &interp.NotAKnotCubic{}
}

// SuppressEdges sets the first and last usf samples of every channel to NaN.
func SuppressEdges(w *mat.Dense, usf int) {
	m, n := w.Dims()
	edge := utils.IntMin(usf, m)
	for j := 0; j < n; j++ {
		for i := 0; i < edge; i++ {
			w.Set(i, j, math.NaN())
			w.Set(m-1-i, j, math.NaN())
		}
	}
}

func finiteMean(values []float64) float64 {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return math.NaN()
	}
	return stat.Mean(finite, nil)
}

func nanSlice(n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = math.NaN()
	}
	return res
}
