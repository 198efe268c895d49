package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clauselens/clauselens/internal/metrics"
	"github.com/clauselens/clauselens/internal/result"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [result.json]",
	Short: "Pretty-print an analysis result",
	Long: `Decode an analysis result, print its verdict to stderr, and write the
payload to stdout as indented, syntax-colored JSON.

Examples:
  clauselens inspect result.json
  cat result.json | clauselens inspect -
  clauselens inspect --id 42 --no-color | jq .clause_analysis`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("id", "", "fetch the result from the analyzer history")
	inspectCmd.Flags().Bool("validate", false, "check the payload against the result schema")
	inspectCmd.Flags().Bool("no-color", false, "print plain JSON without colors")
}

func runInspect(cmd *cobra.Command, args []string) error {
	raw, err := inspectPayload(cmd, args)
	if err != nil {
		return err
	}

	if validate, _ := cmd.Flags().GetBool("validate"); validate {
		if err := result.Validate(raw); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}

	a, err := result.Decode(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	m := metrics.Derive(a)
	fmt.Fprintf(os.Stderr, "%s: %s (risk %.1f, compliance %.1f, ambiguity %.1f)\n",
		a.DisplayName(), m.Verdict.Label, m.RiskScore, m.ComplianceScore, m.AmbiguityScore)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return fmt.Errorf("formatting payload: %w", err)
	}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		fmt.Println(pretty.String())
		return nil
	}
	fmt.Println(highlightJSON(pretty.String()))
	return nil
}

// inspectPayload returns the raw result bytes, re-encoding fetched
// results so --id and file input print the same way.
func inspectPayload(cmd *cobra.Command, args []string) ([]byte, error) {
	if id, _ := cmd.Flags().GetString("id"); id != "" {
		c, err := backendClient()
		if err != nil {
			return nil, err
		}
		a, err := c.Fetch(cmd.Context(), id)
		if err != nil {
			return nil, err
		}
		return json.Marshal(a)
	}
	return loadRaw(args)
}
