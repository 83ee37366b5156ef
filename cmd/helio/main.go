package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"heliocorr/adapters/excel"
	"heliocorr/adapters/report"
	"heliocorr/adapters/stats/cycle"
	"heliocorr/app"
	"heliocorr/domain/analysis"
	"heliocorr/domain/timeseries"
	"heliocorr/internal"
	"heliocorr/internal/config"
)

func main() {
	// Optional .env for local runs; the environment wins when both set.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "helio",
		Short: "Correlate solar-activity series against biological event series",
	}

	rootCmd.AddCommand(newAnalyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var activityPath, eventsPath string
	var cadence, method string
	var maxLag, seasonalPeriod, minPoints int
	var htmlOut string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full correlation and cycle analysis on two series files",
		Long: `Load an activity series and an event series (xlsx or csv, two columns:
timestamp and value), align them onto a shared cadence grid, and run the
correlation, spectral, phase, seasonal, and cycle-prediction stages.

Example: helio analyze --activity sunspots.csv --events admissions.csv --cadence monthly --max-lag 6`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			params := analysis.Params{
				ResampleCadence:   timeseries.Cadence(firstNonEmpty(cadence, cfg.Engine.Cadence)),
				MaxLag:            firstPositive(maxLag, cfg.Engine.MaxLag),
				SeasonalPeriod:    firstPositive(seasonalPeriod, cfg.Engine.SeasonalPeriod),
				MinPoints:         firstPositive(minPoints, cfg.Engine.MinPoints),
				CorrelationMethod: analysis.Method(firstNonEmpty(method, cfg.Engine.Method)),
			}

			return runAnalyze(cmd, activityPath, eventsPath, params, cfg, htmlOut, asJSON)
		},
	}

	cmd.Flags().StringVar(&activityPath, "activity", "", "Activity series file (.xlsx or .csv)")
	cmd.Flags().StringVar(&eventsPath, "events", "", "Event series file (.xlsx or .csv)")
	cmd.Flags().StringVar(&cadence, "cadence", "", "Resample cadence: daily, weekly, or monthly")
	cmd.Flags().IntVar(&maxLag, "max-lag", 0, "Lag scan window in grid units")
	cmd.Flags().IntVar(&seasonalPeriod, "seasonal-period", 0, "Expected cycle length in grid units")
	cmd.Flags().IntVar(&minPoints, "min-points", 0, "Minimum aligned points required")
	cmd.Flags().StringVar(&method, "method", "", "Correlation method: pearson or cross_correlation")
	cmd.Flags().StringVar(&htmlOut, "html", "", "Also write an HTML rendering to this path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the raw report as JSON instead of markdown")
	_ = cmd.MarkFlagRequired("activity")
	_ = cmd.MarkFlagRequired("events")

	return cmd
}

func runAnalyze(cmd *cobra.Command, activityPath, eventsPath string, params analysis.Params, cfg *config.Config, htmlOut string, asJSON bool) error {
	activity, err := excel.NewSeriesReader(activityPath).ReadSeries()
	if err != nil {
		return fmt.Errorf("loading activity series: %w", err)
	}
	events, err := excel.NewSeriesReader(eventsPath).ReadSeries()
	if err != nil {
		return fmt.Errorf("loading event series: %w", err)
	}

	logger := internal.NewDefaultLogger()
	service := app.NewAnalysisService(logger, app.NewResultCache(), cycle.Config{
		MinSpacing:   cfg.Risk.MinPeakSpacing,
		TrendWindow:  cfg.Risk.TrendWindow,
		HighFraction: cfg.Risk.HighFraction,
		LowFraction:  cfg.Risk.LowFraction,
	})

	result, err := service.Analyze(cmd.Context(), activity, events, params)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), report.Render(result))
	}

	if htmlOut != "" {
		if err := os.WriteFile(htmlOut, report.RenderHTML(result), 0o644); err != nil {
			return fmt.Errorf("writing HTML report: %w", err)
		}
		logger.Info("HTML report written to %s", htmlOut)
	}

	if cfg.Alerts.Enabled {
		_, latest := activity.Last()
		alertSvc := app.NewAlertService(logger, app.AlertConfig{
			ActivityThreshold:    cfg.Alerts.ActivityThreshold,
			CorrelationThreshold: cfg.Alerts.CorrelationThreshold,
		})
		for _, alert := range alertSvc.Evaluate(result, latest) {
			fmt.Fprintf(cmd.OutOrStdout(), "ALERT [%s] %s: %s\n", alert.Severity, alert.Type, alert.Message)
		}
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
