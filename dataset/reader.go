package dataset

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/uyouii/waveform-polarity/common"
	"github.com/uyouii/waveform-polarity/model"
	"gonum.org/v1/gonum/mat"
)

// DefaultUnitsPath is the gjson path of the units array in a dataset document.
const DefaultUnitsPath = "units"

// LoadJSON reads the units array found at path in a JSON document. Each unit is
//
//	{"id": "...", "session": "...", "spike_count": 12, "region": "...",
//	 "mean": [[...], ...], "sd": [[...], ...]}
//
// with one inner array per sample and one value per channel. null and "NaN"
// are read as NaN. A unit missing mean or sd is loaded as is; rejecting it is
// left to the classifier.
func LoadJSON(r io.Reader, path string) ([]*model.Unit, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: dataset is not valid json", common.ErrorInvalidValue)
	}
	if path == "" {
		path = DefaultUnitsPath
	}

	result := gjson.GetBytes(body, path)
	if !result.IsArray() {
		return nil, fmt.Errorf("%w: no units array at %q", common.ErrorInvalidValue, path)
	}

	items := result.Array()
	units := make([]*model.Unit, 0, len(items))
	for i, item := range items {
		unit, err := parseUnit(i, item)
		if err != nil {
			return nil, fmt.Errorf("error parsing unit %d: %w", i, err)
		}
		units = append(units, unit)
	}
	return units, nil
}

func parseUnit(index int, item gjson.Result) (*model.Unit, error) {
	if !item.IsObject() {
		return nil, fmt.Errorf("%w: unit is not an object", common.ErrorInvalidValue)
	}

	unit := &model.Unit{
		ID:         strconv.Itoa(index),
		Session:    item.Get("session").String(),
		SpikeCount: int(item.Get("spike_count").Int()),
		Region:     item.Get("region").String(),
	}
	if id := item.Get("id"); id.Exists() && id.Type != gjson.Null {
		unit.ID = id.String()
	}

	var err error
	if unit.Mean, err = parseMatrix(item.Get("mean")); err != nil {
		return nil, fmt.Errorf("mean: %w", err)
	}
	if unit.SD, err = parseMatrix(item.Get("sd")); err != nil {
		return nil, fmt.Errorf("sd: %w", err)
	}
	return unit, nil
}

// parseMatrix returns nil for a missing, null or empty matrix.
func parseMatrix(res gjson.Result) (*mat.Dense, error) {
	if !res.Exists() || res.Type == gjson.Null {
		return nil, nil
	}
	if !res.IsArray() {
		return nil, fmt.Errorf("%w: matrix is not an array", common.ErrorInvalidValue)
	}

	rows := res.Array()
	if len(rows) == 0 {
		return nil, nil
	}
	if !rows[0].IsArray() {
		return nil, fmt.Errorf("%w: row 0 is not an array", common.ErrorInvalidValue)
	}
	cols := len(rows[0].Array())
	if cols == 0 {
		return nil, nil
	}

	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if !row.IsArray() {
			return nil, fmt.Errorf("%w: row %d is not an array", common.ErrorInvalidValue, i)
		}
		values := row.Array()
		if len(values) != cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", common.ErrorInvalidValue,
				i, len(values), cols)
		}
		for j, v := range values {
			f, err := parseValue(v)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i, j, err)
			}
			data = append(data, f)
		}
	}
	return mat.NewDense(len(rows), cols, data), nil
}

func parseValue(v gjson.Result) (float64, error) {
	switch v.Type {
	case gjson.Null:
		return math.NaN(), nil
	case gjson.Number:
		return v.Float(), nil
	case gjson.String:
		if strings.EqualFold(v.Str, "nan") {
			return math.NaN(), nil
		}
		f, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", common.ErrorInvalidValue, v.Str)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: unexpected %v", common.ErrorInvalidValue, v.Type)
}
