package model

import (
	"encoding/json"
	"math"
)

// OptionalFloat is a float64 that may be absent.
// Arithmetic with an absent operand is absent, comparisons with an absent operand are false.
type OptionalFloat struct {
	value float64
	valid bool
}

// Some returns a present value; NaN is treated as absent.
func Some(v float64) OptionalFloat {
	if math.IsNaN(v) {
		return OptionalFloat{}
	}
	return OptionalFloat{value: v, valid: true}
}

func None() OptionalFloat {
	return OptionalFloat{}
}

func (f OptionalFloat) Valid() bool {
	return f.valid
}

func (f OptionalFloat) Get() (float64, bool) {
	return f.value, f.valid
}

// Float64 returns the value, or NaN when absent.
func (f OptionalFloat) Float64() float64 {
	if !f.valid {
		return math.NaN()
	}
	return f.value
}

func (f OptionalFloat) Abs() OptionalFloat {
	if !f.valid {
		return f
	}
	return Some(math.Abs(f.value))
}

func (f OptionalFloat) Add(o OptionalFloat) OptionalFloat {
	if !f.valid || !o.valid {
		return None()
	}
	return Some(f.value + o.value)
}

func (f OptionalFloat) Sub(o OptionalFloat) OptionalFloat {
	if !f.valid || !o.valid {
		return None()
	}
	return Some(f.value - o.value)
}

// Div divides f by o. 0/0 is absent, x/0 is a signed infinity.
func (f OptionalFloat) Div(o OptionalFloat) OptionalFloat {
	if !f.valid || !o.valid {
		return None()
	}
	return Some(f.value / o.value)
}

func (f OptionalFloat) Greater(o OptionalFloat) bool {
	return f.valid && o.valid && f.value > o.value
}

func (f OptionalFloat) Less(o OptionalFloat) bool {
	return f.valid && o.valid && f.value < o.value
}

func (f OptionalFloat) GreaterThan(v float64) bool {
	return f.Greater(Some(v))
}

func (f OptionalFloat) LessThan(v float64) bool {
	return f.Less(Some(v))
}

// Between reports lower < f < upper.
func (f OptionalFloat) Between(lower, upper float64) bool {
	return f.GreaterThan(lower) && f.LessThan(upper)
}

func (f OptionalFloat) MarshalJSON() ([]byte, error) {
	if !f.valid || math.IsInf(f.value, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

func (f *OptionalFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = None()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Some(v)
	return nil
}

// OptionalInt is an int that may be absent.
type OptionalInt struct {
	value int
	valid bool
}

func SomeInt(v int) OptionalInt {
	return OptionalInt{value: v, valid: true}
}

func NoneInt() OptionalInt {
	return OptionalInt{}
}

func (i OptionalInt) Valid() bool {
	return i.valid
}

func (i OptionalInt) Get() (int, bool) {
	return i.value, i.valid
}

// Float64 returns the value as float64, or NaN when absent.
func (i OptionalInt) Float64() float64 {
	if !i.valid {
		return math.NaN()
	}
	return float64(i.value)
}

func (i OptionalInt) MarshalJSON() ([]byte, error) {
	if !i.valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.value)
}

func (i *OptionalInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = NoneInt()
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*i = SomeInt(v)
	return nil
}
