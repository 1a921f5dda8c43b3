package polarity

import (
	"github.com/uyouii/waveform-polarity/model"
	"gonum.org/v1/gonum/mat"
)

// DetectExtrema returns the sign-validated local extrema of every channel of w2.
// s2 supplies the sd at each extremum and must have the shape of w2.
func DetectExtrema(w2, s2 *mat.Dense) [][]model.Extremum {
	_, n := w2.Dims()
	res := make([][]model.Extremum, n)
	for j := 0; j < n; j++ {
		res[j] = detectChannel(j, mat.Col(nil, j, w2), mat.Col(nil, j, s2))
	}
	return res
}

// detectChannel differences the sign of the first difference. A step of +2 marks
// a local minimum and -2 a local maximum at the following sample. NaN never
// qualifies. Maxima must be strictly positive and minima strictly negative.
func detectChannel(channel int, values, sds []float64) []model.Extremum {
	res := []model.Extremum{}

	signs := signOfDiff(values)
	for k := 0; k+1 < len(signs); k++ {
		step := signs[k+1] - signs[k]
		idx := k + 1
		value := values[idx]

		var kind model.ExtremumKind
		switch {
		case step > 1 && value < 0:
			kind = model.Trough
		case step < -1 && value > 0:
			kind = model.Peak
		default:
			continue
		}

		res = append(res, model.Extremum{
			Index:   idx,
			Channel: channel,
			Value:   value,
			SD:      sds[idx],
			Kind:    kind,
		})
	}
	return res
}

func signOfDiff(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}
	res := make([]float64, len(values)-1)
	for i := range res {
		res[i] = sign(values[i+1] - values[i])
	}
	return res
}

// sign is -1, 0 or +1, and NaN for NaN.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	case v == 0:
		return 0
	}
	return v
}
