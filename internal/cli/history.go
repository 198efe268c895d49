package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/clauselens/clauselens/internal/client"
	"github.com/clauselens/clauselens/internal/metrics"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List analyses stored by the analyzer service",
	Long: `List the analyzer service's stored analyses, newest first. Pass an
entry's id to dashboard, report, or inspect to open it.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 0, "show at most n entries")
}

func runHistory(cmd *cobra.Command, args []string) error {
	c, err := backendClient()
	if err != nil {
		return err
	}

	entries, err := c.History(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No stored analyses.")
		return nil
	}
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	fmt.Println(historyTable(entries))
	return nil
}

func historyTable(entries []client.HistoryEntry) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6272a4")).
		Bold(true).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#44475a"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 {
				tone := metrics.RiskTone(entries[row].RiskScore)
				return cellStyle.Foreground(lipgloss.Color(tone.Hex()))
			}
			return cellStyle
		}).
		Headers("ID", "DOCUMENT", "RISK", "COMPLIANCE", "CREATED")

	for _, e := range entries {
		created := e.CreatedAt
		if len(created) > 10 {
			created = created[:10]
		}
		tbl.Row(e.ID, e.DocumentName,
			fmt.Sprintf("%.1f", e.RiskScore),
			fmt.Sprintf("%.1f", e.ComplianceScore),
			created)
	}
	return tbl.Render()
}
