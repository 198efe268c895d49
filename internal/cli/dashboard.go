package cli

import (
	"github.com/spf13/cobra"

	"github.com/clauselens/clauselens/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [result.json]",
	Short: "Open the interactive dashboard for an analysis result",
	Long: `Open the animated terminal dashboard for a contract analysis result:
score gauges, risk charts with hover tooltips, the essential clause
checklist, and the risk findings table.

Examples:
  clauselens dashboard result.json
  cat result.json | clauselens dashboard -
  clauselens dashboard --id 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().String("id", "", "fetch the result from the analyzer history")
	dashboardCmd.Flags().Bool("validate", false, "check the payload against the result schema")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	a, err := loadAnalysis(cmd, args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return tui.Run(a, motionOptions(cfg))
}
