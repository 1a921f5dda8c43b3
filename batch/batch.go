package batch

import (
	"context"
	"math"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/uyouii/waveform-polarity/model"
	"github.com/uyouii/waveform-polarity/polarity"
	"github.com/uyouii/waveform-polarity/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

type Options struct {
	// Workers bounds the number of units classified at once; <= 0 means NumCPU.
	Workers int
	Config  polarity.Config
}

func DefaultOptions() Options {
	return Options{
		Workers: runtime.NumCPU(),
		Config:  polarity.DefaultConfig(),
	}
}

// UnitResult is the outcome for the unit at Index of the input. Polarity is nil
// when the unit was rejected, and Err says why.
type UnitResult struct {
	Index      int
	ID         string
	Session    string
	Region     string
	SpikeCount int

	Polarity *model.UnitPolarity
	Err      error
}

func (r *UnitResult) Failed() bool {
	return r.Err != nil || r.Polarity == nil
}

type Result struct {
	RunID      uuid.UUID
	StartedAt  time.Time
	Duration   time.Duration
	Thresholds polarity.Thresholds
	Units      []UnitResult
}

// Process classifies every unit, bounded by opts.Workers. A rejected unit is
// recorded with its error and does not stop the batch; only cancellation of
// ctx does.
func Process(ctx context.Context, units []*model.Unit, opts Options) (*Result, error) {
	runID := uuid.New()
	logger := utils.GetLogger(ctx).With(zap.String("runID", runID.String()))
	ctx = utils.WithLogger(ctx, logger)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	res := &Result{
		RunID:      runID,
		StartedAt:  time.Now(),
		Thresholds: opts.Config.Thresholds,
		Units:      make([]UnitResult, len(units)),
	}
	logger.Info("Begin Process", zap.Int("units", len(units)), zap.Int("workers", workers),
		zap.Float64s("thresholds", opts.Config.Thresholds.Slice()))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, unit := range units {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res.Units[i] = classify(gctx, i, unit, opts.Config)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Process canceled", zap.Error(err))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		logger.Error("Process canceled", zap.Error(err))
		return nil, err
	}

	res.Duration = time.Since(res.StartedAt)
	logger.Info("Process finished", zap.Int("failed", res.FailedCount()),
		zap.Duration("duration", res.Duration))
	return res, nil
}

func classify(ctx context.Context, index int, unit *model.Unit, cfg polarity.Config) UnitResult {
	res := UnitResult{Index: index}
	if unit != nil {
		res.ID, res.Session, res.Region, res.SpikeCount = unit.ID, unit.Session, unit.Region, unit.SpikeCount
	}
	res.Polarity, res.Err = polarity.ClassifyUnit(ctx, unit, cfg)
	return res
}

func (r *Result) FailedCount() int {
	cnt := 0
	for i := range r.Units {
		if r.Units[i].Failed() {
			cnt++
		}
	}
	return cnt
}

// MaxChannels is the largest channel count over all classified units.
func (r *Result) MaxChannels() int {
	res := 0
	for i := range r.Units {
		res = utils.IntMax(res, r.Units[i].Polarity.ChannelCount())
	}
	return res
}

// Padded holds the per-unit outputs aligned by unit index. Channel-indexed
// outputs are units x MaxChannels, NaN where a unit has no such channel or
// the value is absent.
type Padded struct {
	Polarity    *mat.Dense
	Magnitude   *mat.Dense
	BPI         *mat.Dense
	MainChannel []float64
	UnitType    []float64
}

func (r *Result) Padded() *Padded {
	rows, cols := len(r.Units), r.MaxChannels()

	res := &Padded{
		MainChannel: make([]float64, rows),
		UnitType:    make([]float64, rows),
	}
	if rows == 0 || cols == 0 {
		for i := range r.Units {
			res.MainChannel[i], res.UnitType[i] = math.NaN(), math.NaN()
		}
		return res
	}

	res.Polarity = nanDense(rows, cols)
	res.Magnitude = nanDense(rows, cols)
	res.BPI = nanDense(rows, cols)

	for i := range r.Units {
		up := r.Units[i].Polarity
		if up == nil {
			res.MainChannel[i], res.UnitType[i] = math.NaN(), math.NaN()
			continue
		}
		res.MainChannel[i] = up.MainChannel.Float64()
		res.UnitType[i] = up.UnitType.Code()

		setRowPrefix(res.Polarity, i, up.PolarityValues())
		setRowPrefix(res.Magnitude, i, up.Magnitudes())
		setRowPrefix(res.BPI, i, up.BPIs())
	}
	return res
}

func nanDense(rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = math.NaN()
	}
	return mat.NewDense(rows, cols, data)
}

func setRowPrefix(m *mat.Dense, row int, values []float64) {
	for j, v := range values {
		m.Set(row, j, v)
	}
}
