package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clauselens/clauselens/internal/result"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [result.json]",
	Short: "Print the result schema or validate a file against it",
	Long: `With no arguments, print the JSON Schema that analyzer results must
satisfy. With a file argument, validate the file against the schema and
exit non-zero on failure.

Examples:
  clauselens schema > result.schema.json
  clauselens schema result.json
  cat result.json | clauselens schema -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println(result.Schema)
		return nil
	}

	raw, err := loadRaw(args)
	if err != nil {
		return err
	}
	if err := result.Validate(raw); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	fmt.Printf("%s: valid\n", args[0])
	return nil
}
