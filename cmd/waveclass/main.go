package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/uyouii/waveform-polarity/batch"
	"github.com/uyouii/waveform-polarity/config"
	"github.com/uyouii/waveform-polarity/dataset"
	"github.com/uyouii/waveform-polarity/model"
	"github.com/uyouii/waveform-polarity/polarity"
	"github.com/uyouii/waveform-polarity/utils"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "waveclass",
		Short:         "Classify the waveform polarity of recorded units",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := utils.NewLogger(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
			}
			zap.ReplaceGlobals(logger)
			cmd.SetContext(utils.WithLogger(cmd.Context(), logger))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&cfg.UnitsPath, "path", cfg.UnitsPath, "Path of the units array in the input document")
	rootCmd.PersistentFlags().IntVar(&cfg.Workers, "workers", cfg.Workers, "Units classified at once")

	rootCmd.AddCommand(
		newClassifyCmd(cfg),
		newSummaryCmd(cfg),
	)
	return rootCmd
}

type classifyFlags struct {
	input      string
	out        string
	xlsx       string
	thresholds []float64
}

func newClassifyCmd(cfg *config.Config) *cobra.Command {
	var flags classifyFlags

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify every unit of a dataset and export the results",
		Long: `Classify every unit of a JSON dataset and write the per-unit results.

Channel-indexed outputs are padded to the widest unit. The JSON result goes to
--out, or stdout when --out is empty. --xlsx also writes an Excel workbook.

Example: waveclass classify --input units.json --out result.json --xlsx result.xlsx --thresholds 1.25,-1,1.75,-1.75`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd.Context(), cfg, flags, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flags.input, "input", "", "Dataset JSON file")
	cmd.Flags().StringVar(&flags.out, "out", "", "JSON result file, stdout when empty")
	cmd.Flags().StringVar(&flags.xlsx, "xlsx", "", "Excel result file")
	cmd.Flags().Float64SliceVar(&flags.thresholds, "thresholds", nil,
		"zP_B,zN_B,zP_P,zN_N; the defaults are used when this is not four values")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newSummaryCmd(cfg *config.Config) *cobra.Command {
	var input string
	var thresholds []float64

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print unit type counts and main channel statistics of a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := process(cmd.Context(), cfg, input, thresholds)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), batch.Summarize(res))
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Dataset JSON file")
	cmd.Flags().Float64SliceVar(&thresholds, "thresholds", nil, "zP_B,zN_B,zP_P,zN_N")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func process(ctx context.Context, cfg *config.Config, input string, thresholds []float64) (*batch.Result, error) {
	logger := utils.GetLogger(ctx)

	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset: %w", err)
	}
	defer f.Close()

	units, err := dataset.LoadJSON(f, cfg.UnitsPath)
	if err != nil {
		return nil, err
	}

	polarityCfg, ok := polarity.ConfigWithThresholds(thresholds)
	if !ok {
		logger.Warn("malformed thresholds, using the defaults", zap.Float64s("thresholds", thresholds),
			zap.Float64s("defaults", polarityCfg.Thresholds.Slice()))
	}

	return batch.Process(ctx, units, batch.Options{Workers: cfg.Workers, Config: polarityCfg})
}

func runClassify(ctx context.Context, cfg *config.Config, flags classifyFlags, stdout io.Writer) error {
	res, err := process(ctx, cfg, flags.input, flags.thresholds)
	if err != nil {
		return err
	}

	if flags.out == "" {
		if err := dataset.WriteJSON(stdout, res, cfg.Round); err != nil {
			return err
		}
	} else if err := writeFile(flags.out, func(w io.Writer) error {
		return dataset.WriteJSON(w, res, cfg.Round)
	}); err != nil {
		return err
	}

	if flags.xlsx != "" {
		if err := writeFile(flags.xlsx, func(w io.Writer) error {
			return dataset.WriteXLSX(w, res, cfg.Round)
		}); err != nil {
			return err
		}
	}

	utils.GetLogger(ctx).Info("classify done", zap.String("runID", res.RunID.String()),
		zap.Int("units", len(res.Units)), zap.Int("failed", res.FailedCount()))
	return nil
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(w io.Writer, s *batch.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "units\t%d\n", s.Units)
	fmt.Fprintf(tw, "failed\t%d\n", s.Failed)
	fmt.Fprintf(tw, "bpi mode\t%s\n", formatStat(s.BPIMode))
	fmt.Fprintf(tw, "bpi > 0 mass\t%s\n", formatStat(s.BPIPositiveMass))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "type\tcount\tbpi median\tbpi p10\tbpi p90\t|magnitude| median\t|magnitude| mean")
	for _, t := range s.ByType {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n", t.UnitType, t.Count,
			formatStat(t.BPIMedian), formatStat(t.BPIP10), formatStat(t.BPIP90),
			formatStat(t.MagnitudeMedian), formatStat(t.MagnitudeMean))
	}
	return tw.Flush()
}

func formatStat(v float64) string {
	o := model.Some(v)
	if !o.Valid() {
		return "-"
	}
	return fmt.Sprintf("%.3f", o.Float64())
}
