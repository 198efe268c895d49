package cli

import (
	"github.com/spf13/cobra"

	"github.com/clauselens/clauselens/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	Long: `Start an HTTP server that accepts analysis results and serves the
report page, derived metrics, chart series, and a WebSocket stream of
animated gauge frames.

Endpoints:
  GET  /healthz      Health check
  GET  /             HTML report for the loaded result
  GET  /api/result   Loaded analysis result
  POST /api/result   Load a new analysis result
  GET  /api/metrics  Derived dashboard metrics
  GET  /api/series   Chart series
  GET  /ws           WebSocket gauge stream`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "", "listen address (overrides config)")
	serveCmd.Flags().Bool("validate", false, "reject results that fail schema validation")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}
	validate, _ := cmd.Flags().GetBool("validate")

	srv := api.New(addr, api.Options{
		Validate:       validate,
		ReducedMotion:  cfg.Motion.Reduced || reducedMotion,
		GaugeDuration:  cfg.Motion.GaugeDuration(),
		RevealDuration: cfg.Motion.RevealDuration(),
		Stagger:        cfg.Motion.Stagger(),
		FPS:            cfg.Motion.FPS,
	})
	return srv.ListenAndServe()
}
