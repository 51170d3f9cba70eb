package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"costreports/config"
	"costreports/services"
)

var (
	genTool     string
	genInput    string
	genOutput   string
	genFormat   string
	genAsOf     string
	genDateFrom string
	genDateTill string
	genCostCode string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a report from a local spreadsheet",
	Example: `  costreports generate --tool summary --input costs.xlsx --as-of 2024-06-30 --output report.pdf
  costreports generate --tool details --input costs.xlsx --from 2024-01-01 --till 2024-03-31 --cost-code 7 --output q1.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		setupLogging(cfg.LogLevel, cfg.LogFormat)

		in, err := os.Open(genInput)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer in.Close()

		var out []byte
		switch genTool {
		case "summary":
			if genAsOf == "" {
				return fmt.Errorf("--as-of is required for the summary report")
			}
			asOf, err := time.Parse("2006-01-02", genAsOf)
			if err != nil {
				return fmt.Errorf("--as-of must be YYYY-MM-DD: %w", err)
			}
			params := services.SummaryParams{AsOf: asOf, CompanyTitle: cfg.CompanyTitle}
			if genFormat == "excel" {
				out, err = services.GenerateSummaryExcel(in, genInput, params)
			} else {
				out, err = services.GenerateSummaryPDF(in, genInput, params)
			}
			if err != nil {
				return err
			}

		case "details":
			params := services.DetailParams{CostCode: genCostCode}
			if params.DateFrom, err = parseOptionalFlagDate(genDateFrom, "--from"); err != nil {
				return err
			}
			if params.DateTill, err = parseOptionalFlagDate(genDateTill, "--till"); err != nil {
				return err
			}
			if out, err = services.GenerateDetailsPDF(in, genInput, params); err != nil {
				return err
			}

		default:
			return fmt.Errorf("--tool must be summary or details, got %q", genTool)
		}

		if err := os.WriteFile(genOutput, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logrus.WithFields(logrus.Fields{
			"output": genOutput,
			"bytes":  len(out),
		}).Info("report written")
		return nil
	},
}

func parseOptionalFlagDate(value, flag string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%s must be YYYY-MM-DD: %w", flag, err)
	}
	return &t, nil
}

func init() {
	generateCmd.Flags().StringVar(&genTool, "tool", "summary", "report variant: summary or details")
	generateCmd.Flags().StringVar(&genInput, "input", "", "input spreadsheet (.xlsx or .xls)")
	generateCmd.Flags().StringVar(&genOutput, "output", "report.pdf", "output file path")
	generateCmd.Flags().StringVar(&genFormat, "format", "pdf", "output format for the summary report: pdf or excel")
	generateCmd.Flags().StringVar(&genAsOf, "as-of", "", "inclusive as-of date (summary report)")
	generateCmd.Flags().StringVar(&genDateFrom, "from", "", "range start date (details report)")
	generateCmd.Flags().StringVar(&genDateTill, "till", "", "range end date (details report)")
	generateCmd.Flags().StringVar(&genCostCode, "cost-code", "", "cost code filter (details report)")
	_ = generateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(generateCmd)
}
