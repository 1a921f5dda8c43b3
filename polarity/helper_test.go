package polarity

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// gaussian returns m samples of height*exp(-(i-center)^2 / (2*sigma^2)).
func gaussian(m int, center, sigma, height float64) []float64 {
	res := make([]float64, m)
	for i := range res {
		d := float64(i) - center
		res[i] = height * math.Exp(-d*d/(2*sigma*sigma))
	}
	return res
}

func sum(a, b []float64) []float64 {
	res := make([]float64, len(a))
	for i := range a {
		res[i] = a[i] + b[i]
	}
	return res
}

func filled(m int, v float64) []float64 {
	res := make([]float64, m)
	for i := range res {
		res[i] = v
	}
	return res
}

// columns builds a samples x channels matrix from per-channel waveforms.
func columns(cols ...[]float64) *mat.Dense {
	res := mat.NewDense(len(cols[0]), len(cols), nil)
	for j, col := range cols {
		res.SetCol(j, col)
	}
	return res
}
