package model

import "math"

type ExtremumKind int

const (
	Peak   ExtremumKind = 1
	Trough ExtremumKind = 2
)

func (k ExtremumKind) String() string {
	switch k {
	case Peak:
		return "peak"
	case Trough:
		return "trough"
	}
	return "unknown"
}

// Extremum is a local maximum or minimum of an upsampled channel.
// Index is the sample index on the upsampled grid.
type Extremum struct {
	Index   int
	Channel int
	Value   float64
	SD      float64
	Kind    ExtremumKind
}

// ChannelExtrema holds the selected positive and negative extremum of one channel.
// Times are in original sample units (0-based) and may be fractional.
type ChannelExtrema struct {
	P     OptionalFloat `json:"p"`
	TimeP OptionalFloat `json:"time_p"`
	ZP    OptionalFloat `json:"z_p"`
	N     OptionalFloat `json:"n"`
	TimeN OptionalFloat `json:"time_n"`
	ZN    OptionalFloat `json:"z_n"`
	BPI   OptionalFloat `json:"bpi"`
}

type Polarity int

const (
	PolarityUnclassified Polarity = iota
	PolarityB
	PolarityP
	PolarityN
)

func (p Polarity) String() string {
	switch p {
	case PolarityB:
		return "B"
	case PolarityP:
		return "P"
	case PolarityN:
		return "N"
	}
	return "unclassified"
}

// Code returns the numeric label: B=0, P=1, N=-1, NaN when unclassified.
func (p Polarity) Code() float64 {
	switch p {
	case PolarityB:
		return 0
	case PolarityP:
		return 1
	case PolarityN:
		return -1
	}
	return math.NaN()
}

func (p Polarity) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type UnitType int

const (
	UnitTypeUnclassified UnitType = 0
	UnitTypeOther        UnitType = 1
	UnitTypePUnit        UnitType = 2
	UnitTypeBIP          UnitType = 3
)

func (t UnitType) String() string {
	switch t {
	case UnitTypeOther:
		return "Other"
	case UnitTypePUnit:
		return "P-unit"
	case UnitTypeBIP:
		return "BIP"
	}
	return "unclassified"
}

// Code returns the numeric unit type: Other=1, P-unit=2, BIP=3, NaN when unclassified.
func (t UnitType) Code() float64 {
	if t == UnitTypeUnclassified {
		return math.NaN()
	}
	return float64(t)
}

func (t UnitType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnitTypeOf maps the main channel polarity to a unit type.
func UnitTypeOf(p Polarity) UnitType {
	switch p {
	case PolarityP:
		return UnitTypePUnit
	case PolarityB:
		return UnitTypeBIP
	case PolarityN:
		return UnitTypeOther
	}
	return UnitTypeUnclassified
}

type ChannelPolarity struct {
	Polarity  Polarity       `json:"polarity"`
	Magnitude OptionalFloat  `json:"magnitude"`
	Extrema   ChannelExtrema `json:"extrema"`
}

// UnitPolarity is the classification of one unit. Channel indices are 0-based.
type UnitPolarity struct {
	Channels    []ChannelPolarity `json:"channels"`
	MainChannel OptionalInt       `json:"main_channel"`
	UnitType    UnitType          `json:"unit_type"`
}

func (u *UnitPolarity) ChannelCount() int {
	if u == nil {
		return 0
	}
	return len(u.Channels)
}

func (u *UnitPolarity) PolarityValues() []float64 {
	res := make([]float64, u.ChannelCount())
	for i := range res {
		res[i] = u.Channels[i].Polarity.Code()
	}
	return res
}

func (u *UnitPolarity) Magnitudes() []float64 {
	res := make([]float64, u.ChannelCount())
	for i := range res {
		res[i] = u.Channels[i].Magnitude.Float64()
	}
	return res
}

func (u *UnitPolarity) BPIs() []float64 {
	res := make([]float64, u.ChannelCount())
	for i := range res {
		res[i] = u.Channels[i].Extrema.BPI.Float64()
	}
	return res
}

// Main returns the main channel classification.
func (u *UnitPolarity) Main() (ChannelPolarity, bool) {
	if u == nil {
		return ChannelPolarity{}, false
	}
	idx, ok := u.MainChannel.Get()
	if !ok || idx < 0 || idx >= len(u.Channels) {
		return ChannelPolarity{}, false
	}
	return u.Channels[idx], true
}
