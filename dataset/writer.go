package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/uyouii/waveform-polarity/batch"
	"github.com/uyouii/waveform-polarity/model"
	"github.com/uyouii/waveform-polarity/utils"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/mat"
)

// NoRounding disables rounding of exported values.
const NoRounding int32 = -1

type resultDocument struct {
	RunID       string         `json:"run_id"`
	StartedAt   string         `json:"started_at"`
	Thresholds  []float64      `json:"thresholds"`
	MaxChannels int            `json:"max_channels"`
	Units       []unitDocument `json:"units"`
}

// unitDocument carries the outputs of one unit. Channel-indexed fields are
// padded to max_channels with null.
type unitDocument struct {
	Index       int                   `json:"index"`
	ID          string                `json:"id"`
	Session     string                `json:"session,omitempty"`
	Region      string                `json:"region,omitempty"`
	SpikeCount  int                   `json:"spike_count,omitempty"`
	Error       string                `json:"error,omitempty"`
	UnitType    model.OptionalFloat   `json:"unit_type"`
	MainChannel model.OptionalFloat   `json:"main_channel"`
	Polarity    []model.OptionalFloat `json:"polarity"`
	Magnitude   []model.OptionalFloat `json:"extremum_magnitude"`
	BPI         []model.OptionalFloat `json:"bpi"`
}

// WriteJSON writes the batch result, rounding values to round decimals unless
// round is NoRounding.
func WriteJSON(w io.Writer, res *batch.Result, round int32) error {
	padded := res.Padded()
	cols := res.MaxChannels()

	doc := resultDocument{
		RunID:       res.RunID.String(),
		StartedAt:   res.StartedAt.UTC().Format(time.RFC3339),
		Thresholds:  res.Thresholds.Slice(),
		MaxChannels: cols,
		Units:       make([]unitDocument, len(res.Units)),
	}

	for i := range res.Units {
		u := &res.Units[i]
		unit := unitDocument{
			Index:       u.Index,
			ID:          u.ID,
			Session:     u.Session,
			Region:      u.Region,
			SpikeCount:  u.SpikeCount,
			UnitType:    model.Some(padded.UnitType[i]),
			MainChannel: model.Some(padded.MainChannel[i]),
			Polarity:    rowValues(padded.Polarity, i, cols, NoRounding),
			Magnitude:   rowValues(padded.Magnitude, i, cols, round),
			BPI:         rowValues(padded.BPI, i, cols, round),
		}
		if u.Err != nil {
			unit.Error = u.Err.Error()
		}
		doc.Units[i] = unit
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func rowValues(m *mat.Dense, row, cols int, round int32) []model.OptionalFloat {
	res := make([]model.OptionalFloat, cols)
	for j := range res {
		res[j] = model.Some(roundValue(m.At(row, j), round))
	}
	return res
}

func roundValue(v float64, round int32) float64 {
	if round == NoRounding {
		return v
	}
	return utils.FormatFloat(v, round)
}

const (
	UnitsSheet     = "units"
	PolaritySheet  = "polarity"
	MagnitudeSheet = "extremum_magnitude"
	BPISheet       = "bpi"
)

// WriteXLSX writes the batch result as a workbook: one row per unit in the
// units sheet and one units x channels sheet per channel-indexed output.
// Absent values are left blank.
func WriteXLSX(w io.Writer, res *batch.Result, round int32) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", UnitsSheet); err != nil {
		return fmt.Errorf("error creating sheet %s: %w", UnitsSheet, err)
	}

	padded := res.Padded()
	cols := res.MaxChannels()

	header := []interface{}{"index", "id", "session", "region", "spike_count",
		"unit_type", "main_channel", "error"}
	if err := setRow(f, UnitsSheet, 1, header); err != nil {
		return err
	}
	for i := range res.Units {
		u := &res.Units[i]
		errMsg := ""
		if u.Err != nil {
			errMsg = u.Err.Error()
		}
		row := []interface{}{u.Index, u.ID, u.Session, u.Region, u.SpikeCount,
			cellValue(padded.UnitType[i], NoRounding), cellValue(padded.MainChannel[i], NoRounding), errMsg}
		if err := setRow(f, UnitsSheet, i+2, row); err != nil {
			return err
		}
	}

	sheets := []struct {
		name   string
		values *mat.Dense
		round  int32
	}{
		{PolaritySheet, padded.Polarity, NoRounding},
		{MagnitudeSheet, padded.Magnitude, round},
		{BPISheet, padded.BPI, round},
	}
	for _, sheet := range sheets {
		if err := writeChannelSheet(f, sheet.name, res, sheet.values, cols, sheet.round); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

func writeChannelSheet(f *excelize.File, sheet string, res *batch.Result, values *mat.Dense,
	cols int, round int32) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet %s: %w", sheet, err)
	}

	header := make([]interface{}, 0, cols+1)
	header = append(header, "id")
	for j := 0; j < cols; j++ {
		header = append(header, fmt.Sprintf("ch%d", j))
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i := range res.Units {
		row := make([]interface{}, 0, cols+1)
		row = append(row, res.Units[i].ID)
		for j := 0; j < cols; j++ {
			row = append(row, cellValue(values.At(i, j), round))
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("error writing sheet %s row %d: %w", sheet, row, err)
	}
	return nil
}

// cellValue is nil, a blank cell, for NaN.
func cellValue(v float64, round int32) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return roundValue(v, round)
}
