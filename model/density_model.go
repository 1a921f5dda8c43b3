package model

// Density is one point of an estimated probability density.
type Density struct {
	X     float64 `json:"x"`
	Value float64 `json:"v"`
}

// Interval is a closed range of values.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

func (i Interval) Contains(x float64) bool {
	return x >= i.Lower && x <= i.Upper
}

func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}
