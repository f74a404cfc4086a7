package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gocorr/adapters/excel"
	"gocorr/app"
	"gocorr/domain/stats"
	"gocorr/internal"
	"gocorr/internal/analysis/inference"
	"gocorr/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// options are the flags shared by every command
type options struct {
	file      string
	sheet     string
	alpha     float64
	sidedness string
	jsonOut   bool
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "gocorr",
		Short:         "Correlational hypothesis testing on CSV and XLSX survey data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", os.Getenv("DATA_FILE"), "CSV or XLSX data file (default $DATA_FILE)")
	flags.StringVar(&opts.sheet, "sheet", excel.DefaultSheet, "Worksheet to read from XLSX files")
	flags.Float64Var(&opts.alpha, "alpha", inference.DefaultAlpha, "Significance level")
	flags.StringVar(&opts.sidedness, "sidedness", string(stats.TwoTailed), "one-tailed or two-tailed")
	flags.BoolVar(&opts.jsonOut, "json", false, "Print results as JSON")

	rootCmd.AddCommand(
		newColumnsCmd(opts),
		newProfileCmd(opts),
		newDescribeCmd(opts),
		newNormalityCmd(opts),
		newCorrelateCmd(opts),
		newDimensionsCmd(opts),
		newReportCmd(opts),
		newExportCmd(opts),
	)
	return rootCmd
}

// load reads the data file into a fresh service
func (o *options) load() (*app.AnalysisService, error) {
	if o.file == "" {
		return nil, fmt.Errorf("no data file: pass --file or set DATA_FILE")
	}
	sidedness, err := stats.ParseSidedness(o.sidedness)
	if err != nil {
		return nil, err
	}
	if err := inference.ValidateAlpha(o.alpha); err != nil {
		return nil, err
	}

	readerConfig := excel.DefaultReaderConfig()
	readerConfig.Sheet = o.sheet
	table, err := excel.NewDataReader(o.file, readerConfig).ReadTable()
	if err != nil {
		return nil, err
	}

	logger := internal.NewLogger(internal.ParseLogLevel(os.Getenv("LOG_LEVEL")))
	cfg := config.DefaultAnalysisConfig()
	cfg.SignificanceLevel = o.alpha
	cfg.Sidedness = sidedness

	svc := app.NewAnalysisService(cfg, nil, logger)
	if err := svc.LoadDataset(table); err != nil {
		return nil, err
	}
	return svc, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newColumnsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List the columns of the data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.load()
			if err != nil {
				return err
			}
			columns, _ := svc.Columns()
			numeric, _ := svc.NumericColumns()
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string][]string{"columns": columns, "numeric": numeric})
			}

			isNumeric := make(map[string]bool, len(numeric))
			for _, c := range numeric {
				isNumeric[c] = true
			}
			out := cmd.OutOrStdout()
			for _, c := range columns {
				kind := "text"
				if isNumeric[c] {
					kind = "numeric"
				}
				fmt.Fprintf(out, "%-24s %s\n", c, kind)
			}
			return nil
		},
	}
}

func newProfileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Count parsed, missing and unparseable cells per column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.load()
			if err != nil {
				return err
			}
			profiles, err := svc.Profile()
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), profiles)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-24s %-8s %7s %7s %7s %7s\n", "column", "type", "numeric", "text", "missing", "failed")
			for _, p := range profiles {
				fmt.Fprintf(out, "%-24s %-8s %7d %7d %7d %7d\n", p.Column, p.InferredType, p.Numeric, p.Text, p.Missing, p.ParseFailures)
			}
			return nil
		},
	}
}

func newDescribeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [column...]",
		Short: "Descriptive statistics of numeric columns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.load()
			if err != nil {
				return err
			}

			summaries := make(map[string]stats.Summary, len(args))
			for _, column := range args {
				summary, err := svc.Describe(column)
				if err != nil {
					return err
				}
				summaries[column] = summary
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), summaries)
			}

			out := cmd.OutOrStdout()
			for _, column := range args {
				s := summaries[column]
				fmt.Fprintf(out, "%s\n", column)
				fmt.Fprintf(out, "  n = %d, mean = %.4f, sd = %.4f, se = %.4f\n", s.N, s.Mean, s.StdDev, s.StdErr)
				fmt.Fprintf(out, "  min = %.4f, q1 = %.4f, median = %.4f, q3 = %.4f, max = %.4f\n", s.Min, s.Q1, s.Median, s.Q3, s.Max)
				fmt.Fprintf(out, "  skewness = %.4f, kurtosis = %.4f\n", s.Skewness, s.Kurtosis)
			}
			return nil
		},
	}
}

func newNormalityCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "normality [column...]",
		Short: "Shapiro-Wilk (n < 50) or Kolmogorov-Smirnov normality tests",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.load()
			if err != nil {
				return err
			}

			results := make(map[string]stats.NormalityResult, len(args))
			for _, column := range args {
				result, err := svc.NormalityTest(column)
				if err != nil {
					return err
				}
				results[column] = result
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), results)
			}

			out := cmd.OutOrStdout()
			for _, column := range args {
				r := results[column]
				fmt.Fprintf(out, "%s: %s (%s), %s\n", column, r.Test, r.Reason, r.Decision)
			}
			return nil
		},
	}
}

func newCorrelateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "correlate [x] [y]",
		Short: "Correlate two columns and test H0: ρ = 0",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.load()
			if err != nil {
				return err
			}
			result, err := svc.Correlate(args[0], args[1], "")
			if err != nil {
				return err
			}
			decision, err := svc.TestHypothesis(result)
			if err != nil {
				return err
			}

			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"correlation": result,
					"hypothesis":  decision,
				})
			}
			printCorrelation(cmd.OutOrStdout(), args[0], args[1], result)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", decision.ConclusionH0, decision.ConclusionH1)
			return nil
		},
	}
}

func printCorrelation(out io.Writer, x, y string, r stats.CorrelationResult) {
	ci := r.ConfidenceInterval
	fmt.Fprintf(out, "%s vs %s (n = %d, %s)\n", x, y, r.N, r.Sidedness)
	fmt.Fprintf(out, "  %s: %s = %.4f, p = %.4f, %g%% CI [%.4f, %.4f]\n",
		r.Method, r.Method.Symbol(), r.Coefficient, r.PValue, ci.Level*100, ci.Lower, ci.Upper)
	fmt.Fprintf(out, "  %s\n", r.Interpretation.Text)
}

func newDimensionsCmd(opts *options) *cobra.Command {
	var dims1, dims2 string

	cmd := &cobra.Command{
		Use:   "dimensions [var1] [var2]",
		Short: "Correlate every subscale of var1 with every subscale of var2",
		Long: `Subscales are given as "Name:item1,item2;Name2:item3". Each subscale total
is the per-row sum of its item columns.

Example: gocorr dimensions Anxiety Stress -f survey.csv --dims1 "Somatic:a1,a2;Cognitive:a3" --dims2 "Work:b1,b2"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.load()
			if err != nil {
				return err
			}
			if err := configureDimensions(cmd, svc, args[0], dims1, args[1], dims2); err != nil {
				return err
			}

			results, err := svc.CorrelateByDimensions(cmd.Context(), args[0], args[1], "")
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), results)
			}
			for _, r := range results {
				printCorrelation(cmd.OutOrStdout(), r.Dimension1, r.Dimension2, r.CorrelationResult)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dims1, "dims1", "", "Subscales of var1")
	cmd.Flags().StringVar(&dims2, "dims2", "", "Subscales of var2")
	_ = cmd.MarkFlagRequired("dims1")
	_ = cmd.MarkFlagRequired("dims2")
	return cmd
}

// configureDimensions applies the subscale flags that were given and prints
// the unknown-item warnings to stderr.
func configureDimensions(cmd *cobra.Command, svc *app.AnalysisService, var1, dims1, var2, dims2 string) error {
	for _, d := range []struct{ variable, spec string }{{var1, dims1}, {var2, dims2}} {
		if d.spec == "" {
			continue
		}
		warnings, err := svc.ParseDimensions(d.variable, d.spec)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}
	}
	return nil
}

func newReportCmd(opts *options) *cobra.Command {
	var dims1, dims2, unit, place string

	cmd := &cobra.Command{
		Use:   "report [var1] [var2]",
		Short: "Full analysis report with framework and narrative",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.load()
			if err != nil {
				return err
			}
			if err := configureDimensions(cmd, svc, args[0], dims1, args[1], dims2); err != nil {
				return err
			}

			rep, err := svc.BuildReport(cmd.Context(), app.ReportRequest{
				Var1: args[0], Var2: args[1], Unit: unit, Place: place,
			})
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), rep)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", rep.Framework.Question)
			fmt.Fprintf(out, "General objective: %s\n", rep.Framework.GeneralObjective)
			for i, o := range rep.Framework.SpecificObjectives {
				fmt.Fprintf(out, "  %d. %s\n", i+1, o)
			}
			fmt.Fprintf(out, "\nH0: %s\nH1: %s\n\n", rep.Framework.Hypotheses.Null, rep.Framework.Hypotheses.Alternative)
			printCorrelation(out, args[0], args[1], rep.Correlation)
			fmt.Fprintf(out, "\n%s\n\n%s\n\n%s\n", rep.Narrative.Normality, rep.Narrative.Correlation, rep.Narrative.Hypothesis)
			if len(rep.Dimensions) > 0 {
				fmt.Fprintf(out, "\nDimensions:\n")
				for _, d := range rep.Dimensions {
					printCorrelation(out, d.Dimension1, d.Dimension2, d.CorrelationResult)
				}
			}
			for _, w := range rep.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dims1, "dims1", "", "Subscales of var1")
	cmd.Flags().StringVar(&dims2, "dims2", "", "Subscales of var2")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit of analysis, e.g. students")
	cmd.Flags().StringVar(&place, "place", "", "Where the study takes place")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export [output.csv|output.xlsx]",
		Short: "Write the parsed dataset to CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.load()
			if err != nil {
				return err
			}
			table, err := svc.Table()
			if err != nil {
				return err
			}

			target := args[0]
			if strings.EqualFold(filepath.Ext(target), ".xlsx") {
				if err := excel.WriteXLSX(target, opts.sheet, table); err != nil {
					return err
				}
			} else {
				f, err := os.Create(target)
				if err != nil {
					return err
				}
				if err := excel.WriteCSV(f, table); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(table.Rows), target)
			return nil
		},
	}
}
