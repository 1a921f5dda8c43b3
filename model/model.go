package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Unit is one neural source observed across channels.
// Mean and SD are samples x channels; the metadata is carried along untouched.
type Unit struct {
	ID         string
	Session    string
	SpikeCount int
	Region     string

	Mean *mat.Dense
	SD   *mat.Dense
}

func (u *Unit) DebugString() string {
	if u == nil {
		return "unit: <nil>"
	}
	samples, channels := u.Dims()
	return fmt.Sprintf("id: %v, session: %v, region: %v, samples: %v, channels: %v",
		u.ID, u.Session, u.Region, samples, channels)
}

// Dims returns the dimensions of the mean waveform matrix.
func (u *Unit) Dims() (samples, channels int) {
	if u == nil || u.Mean == nil {
		return 0, 0
	}
	return u.Mean.Dims()
}

func (u *Unit) IsEmpty() bool {
	samples, channels := u.Dims()
	return samples == 0 || channels == 0
}
