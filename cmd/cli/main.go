package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	adapterapi "groupstat/adapters/api"
	"groupstat/adapters/excel"
	"groupstat/adapters/stats/engine"
	"groupstat/domain/grouped"
	"groupstat/internal/config"
	"groupstat/internal/container"
	"groupstat/internal/report"
	"groupstat/models"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "groupstat",
		Short: "Descriptive statistics for grouped (interval/frequency) data",
	}

	rootCmd.AddCommand(
		newPromptCmd(),
		newFileCmd(),
		newBinCmd(),
		newBatchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// columnFlags are shared by the commands that read spreadsheets
type columnFlags struct {
	mapping excel.ColumnMapping
	sheet   string
	format  string
}

func (f *columnFlags) register(cmd *cobra.Command) {
	defaults := excel.DefaultExcelConfig()
	cmd.Flags().StringVar(&f.mapping.Lower, "lower", defaults.Columns.Lower, "Column holding lower class limits")
	cmd.Flags().StringVar(&f.mapping.Upper, "upper", defaults.Columns.Upper, "Column holding upper class limits")
	cmd.Flags().StringVar(&f.mapping.Frequency, "freq", defaults.Columns.Frequency, "Column holding class frequencies")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Worksheet to read (default from EXCEL_SHEET)")
	cmd.Flags().StringVar(&f.format, "format", "text", "Output format: text|markdown|json")
}

func newPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Enter class limits and frequencies interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), engine.NewGroupedStatsEngine())
		},
	}
}

func newFileCmd() *cobra.Command {
	var flags columnFlags
	var outPath string

	cmd := &cobra.Command{
		Use:   "file [path]",
		Short: "Compute statistics from an xlsx or csv file",
		Long: `Read class limits and frequencies from a spreadsheet and compute the
grouped mean, median, mode, variance and standard deviation.

Example: groupstat file classes.xlsx --lower from --upper to --freq count --out classes-stats.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sheet, err := newCLIContainer(flags.sheet)
			if err != nil {
				return err
			}

			rows, err := readRows(args[0], sheet, flags.mapping)
			if err != nil {
				return err
			}

			computation, err := c.ComputeService.Compute(cmd.Context(), sourceFor(args[0]), rows)
			if err != nil {
				return err
			}
			if err := render(cmd.OutOrStdout(), flags.format, filepath.Base(args[0]), computation); err != nil {
				return err
			}

			if outPath != "" {
				if err := excel.WriteAugmented(outPath, computation.Result(), flags.mapping); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&outPath, "out", "", "Write an xlsx workbook with midpoints and statistics")
	return cmd
}

func newBinCmd() *cobra.Command {
	var column, sheet, format string
	var classes int

	cmd := &cobra.Command{
		Use:   "bin [path]",
		Short: "Group a raw numeric column into classes and compute statistics",
		Long: `Bin the values of one spreadsheet column into equal width classes
(Sturges' rule when --classes is 0) and compute the grouped statistics,
alongside the same statistics on the raw values.

Example: groupstat bin scores.csv --column score --classes 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, resolvedSheet, err := newCLIContainer(sheet)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("classes") {
				classes = c.Config.Compute.BinCount
			}

			data, err := excel.NewDataReader(args[0], resolvedSheet).ReadData()
			if err != nil {
				return err
			}
			values, err := excel.ExtractValues(data, column)
			if err != nil {
				return err
			}

			raw, err := c.ComputeService.ComputeRaw(cmd.Context(), sourceFor(args[0]), values, classes)
			if err != nil {
				return err
			}
			if err := render(cmd.OutOrStdout(), format, filepath.Base(args[0]), raw.Computation); err != nil {
				return err
			}

			if format == "text" {
				s := raw.Raw
				fmt.Fprintf(cmd.OutOrStdout(), "Raw values (n=%d): mean %.4f, median %.4f, variance %.4f, std dev %.4f\n",
					s.Count, s.Mean, s.Median, s.Variance, s.StdDev)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Column holding the raw values")
	cmd.Flags().IntVar(&classes, "classes", 0, "Number of classes (0 uses Sturges' rule)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read (default from EXCEL_SHEET)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|markdown|json")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var flags columnFlags

	cmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Compute statistics for several files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, sheet, err := newCLIContainer(flags.sheet)
			if err != nil {
				return err
			}

			datasets := make([][]grouped.IntervalRow, len(args))
			for i, path := range args {
				rows, err := readRows(path, sheet, flags.mapping)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				datasets[i] = rows
			}

			computations, err := c.ComputeService.ComputeBatch(cmd.Context(), "cli-batch", datasets)
			if err != nil {
				return err
			}
			for i, computation := range computations {
				if flags.format == "text" {
					fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", args[i])
				}
				if err := render(cmd.OutOrStdout(), flags.format, filepath.Base(args[i]), computation); err != nil {
					return err
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// newCLIContainer loads configuration and builds an in-memory container.
// The returned sheet is the flag value or the configured default.
func newCLIContainer(sheet string) (*container.Container, string, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	c, err := container.New(cfg)
	if err != nil {
		return nil, "", err
	}
	if sheet == "" {
		sheet = cfg.Excel.Sheet
	}
	return c, sheet, nil
}

func readRows(path, sheet string, mapping excel.ColumnMapping) ([]grouped.IntervalRow, error) {
	data, err := excel.NewDataReader(path, sheet).ReadData()
	if err != nil {
		return nil, err
	}
	return excel.ExtractRows(data, mapping)
}

func sourceFor(path string) string {
	return "cli:" + filepath.Base(path)
}

// render writes a computation in the requested output format
func render(w io.Writer, format, title string, computation *models.Computation) error {
	result := computation.Result()
	switch format {
	case "text":
		_, err := io.WriteString(w, report.Text(result))
		return err
	case "markdown":
		_, err := io.WriteString(w, report.Markdown(title, result))
		return err
	case "json":
		resp := adapterapi.NewComputeResponse(computation.ID.String(), result)
		resp.Breakdown = engine.Breakdown(result)
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	default:
		return fmt.Errorf("unknown format %q (want text, markdown or json)", format)
	}
}
