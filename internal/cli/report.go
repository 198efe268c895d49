package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clauselens/clauselens/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [result.json]",
	Short: "Render a standalone HTML report",
	Long: `Render the analysis as a self-contained HTML report with animated
gauges, charts, and the clause checklist. The page needs no network
access to display.

Examples:
  clauselens report result.json
  clauselens report result.json -o contract.html
  clauselens report --id 42 -o - > report.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringP("out", "o", "report.html", "output file, \"-\" for stdout")
	reportCmd.Flags().String("id", "", "fetch the result from the analyzer history")
	reportCmd.Flags().Bool("validate", false, "check the payload against the result schema")
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := loadAnalysis(cmd, args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := report.Options{
		ReducedMotion:  cfg.Motion.Reduced || reducedMotion,
		GaugeDuration:  cfg.Motion.GaugeDuration(),
		RevealDuration: cfg.Motion.RevealDuration(),
		Stagger:        cfg.Motion.Stagger(),
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "-" {
		return report.Write(os.Stdout, a, opts)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := report.Write(f, a, opts); err != nil {
		return err
	}
	logger.Info("report written", "path", out, "document", a.DisplayName())
	return nil
}
