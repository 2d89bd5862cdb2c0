package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/econdex-org/econdex/country"
	"github.com/econdex-org/econdex/pipeline"
	"github.com/econdex-org/econdex/report"
	"github.com/econdex-org/econdex/source"
)

// ============================================================================
// ECONDEX CLI — Tabular join & estimation pipeline
// ============================================================================

const version = "0.1.0"

var (
	configPath string
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "econdex",
		Short: "Join public economic datasets and estimate AI usage per country",
		Long: `econdex downloads public economic datasets (AI usage index,
internet-access survey, labor-force panels), joins them by country and
year, and derives per-capita AI usage metrics.

Examples:
  # Run the AI-users pipeline and print the top 20 countries
  econdex run --top 20

  # Run with a custom source catalog
  econdex run --config sources.yaml

  # Evaluate the WAU reference curve at a GDP per capita (thousands USD)
  econdex curve 45.5

  # Convert country codes
  econdex lookup US`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML source catalog (default: built-in)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(runCmd(), laborCmd(), curveCmd(), lookupCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func loadConfig() (*source.Config, error) {
	if configPath == "" {
		return source.DefaultConfig(), nil
	}
	return source.LoadConfig(configPath)
}

// ── run ──────────────────────────────────────────────────────────────

func runCmd() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the AI-users pipeline and print the result table",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			p := pipeline.New(cfg, pipeline.WithLogger(logger))
			result, err := p.AIUsers()
			if err != nil {
				return err
			}

			td := report.BuildTable(result,
				report.WithTitle(fmt.Sprintf("AI users by country (%d countries)", result.Len())),
				report.SortByDesc("total_ai_users"),
				report.Limit(top),
				report.WithTotals("claude_users", "chatgpt_users", "total_ai_users"),
			)
			fmt.Print(report.RenderText(td))
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 0, "Limit output to the top N countries (0 = all)")
	return cmd
}

// ── labor ────────────────────────────────────────────────────────────

func laborCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labor",
		Short: "Run the labor-panel merge and print the crowding-out statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			p := pipeline.New(cfg, pipeline.WithLogger(logger))
			result, err := p.LaborPanel()
			if err != nil {
				return err
			}

			fmt.Printf("Merged panel: %d observations across %d countries\n",
				result.Observations, result.Countries)
			fmt.Printf("Crowding out (public sector vs female unemployment): corr=%.3f slope=%.3f\n",
				result.CrowdingOut, result.CrowdingOutSlope)
			fmt.Printf("Crowding in  (public sector vs FLFP):                corr=%.3f\n",
				result.CrowdingIn)
			return nil
		},
	}
}

// ── curve ────────────────────────────────────────────────────────────

func curveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curve <gdp-per-capita-thousands>",
		Short: "Evaluate the WAU reference curve at a GDP value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gdpK, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid GDP value %q: %w", args[0], err)
			}

			logger := newLogger()
			defer logger.Sync()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			p := pipeline.New(cfg, pipeline.WithLogger(logger))
			share, err := p.WAUShare(gdpK)
			if err != nil {
				return err
			}
			fmt.Printf("Estimated WAU share at %.1fk USD GDP per capita (%s): %.4f\n",
				gdpK, cfg.TimePeriod, share)
			return nil
		},
	}
}

// ── lookup ───────────────────────────────────────────────────────────

func lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <code>",
		Short: "Convert between ISO-2 and ISO-3 country codes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			switch len(code) {
			case 2:
				iso3, ok := country.ToISO3(code)
				if !ok {
					return fmt.Errorf("unknown ISO-2 code %q", code)
				}
				fmt.Println(iso3)
			case 3:
				iso2, ok := country.ToISO2(code)
				if !ok {
					return fmt.Errorf("unknown ISO-3 code %q", code)
				}
				fmt.Println(iso2)
			default:
				return fmt.Errorf("code must be 2 or 3 letters, got %q", code)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("econdex %s\n", version)
		},
	}
}
