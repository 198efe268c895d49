// Package cli implements the clauselens command line interface.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/clauselens/clauselens/internal/client"
	"github.com/clauselens/clauselens/internal/config"
	"github.com/clauselens/clauselens/internal/result"
	"github.com/clauselens/clauselens/internal/tui"
)

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
})

var (
	cfgPath       string
	reducedMotion bool
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "clauselens",
	Short: "Animated dashboards for contract analysis results",
	Long: `clauselens turns contract analyzer output into animated dashboards:
an interactive terminal UI, a standalone HTML report, and a local HTTP
server with a live gauge stream.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(charmlog.DebugLevel)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&reducedMotion, "reduced-motion", false, "disable animations")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	if cfgPath != "" {
		return config.LoadFromPath(cfgPath)
	}
	return config.Load()
}

func motionOptions(cfg *config.Config) tui.Options {
	return tui.Options{
		ReducedMotion:  cfg.Motion.Reduced || reducedMotion,
		GaugeDuration:  cfg.Motion.GaugeDuration(),
		RevealDuration: cfg.Motion.RevealDuration(),
		Stagger:        cfg.Motion.Stagger(),
		FPS:            cfg.Motion.FPS,
	}
}

func backendClient() (*client.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return client.New(cfg.Backend.BaseURL, client.WithTimeout(cfg.Backend.Timeout()))
}

// loadAnalysis resolves the analysis from --id, a file argument, or
// stdin when the argument is "-".
func loadAnalysis(cmd *cobra.Command, args []string) (*result.Analysis, error) {
	if id, _ := cmd.Flags().GetString("id"); id != "" {
		c, err := backendClient()
		if err != nil {
			return nil, err
		}
		return c.Fetch(cmd.Context(), id)
	}

	raw, err := loadRaw(args)
	if err != nil {
		return nil, err
	}
	if validate, _ := cmd.Flags().GetBool("validate"); validate {
		if err := result.Validate(raw); err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
	}
	return result.Decode(bytes.NewReader(raw))
}

func loadRaw(args []string) ([]byte, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("specify a result file, \"-\" for stdin, or --id")
	}
	if args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	return data, nil
}
