package source

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ============================================================================
// CONFIG — YAML description of sources and pipeline settings
// ============================================================================

// Well-known source names the pipeline looks up in Config.Sources.
const (
	SourceAEI          = "aei"          // Anthropic Economic Index enriched release
	SourceFindex       = "findex"       // Global Findex Database
	SourceWAUCurve     = "wau_curve"    // ChatGPT WAU share by GDP reference curve
	SourceWWBI         = "wwbi"         // Worldwide Bureaucracy Indicators
	SourceFLFP         = "flfp"         // female labor force participation panel
	SourceUnemployment = "unemployment" // female unemployment panel
)

// Config holds the source catalog and pipeline settings.
type Config struct {
	Sources map[string]Source `yaml:"sources"`

	// TimePeriod selects which period's curve to use from the WAU
	// reference table (the table is keyed by a period label).
	TimePeriod string `yaml:"time_period"`

	// TimeoutSeconds bounds each fetch. One attempt, no retry.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// DefaultConfig returns the catalog pointing at the published datasets.
func DefaultConfig() *Config {
	return &Config{
		Sources: map[string]Source{
			SourceAEI: {
				URL:    "https://huggingface.co/datasets/Anthropic/EconomicIndex/resolve/main/release_2025_09_15/data/output/aei_enriched_claude_ai_2025-08-04_to_2025-08-11.csv",
				Expect: []string{"facet", "variable", "geo_id", "geo_name", "value"},
			},
			SourceFindex: {
				URL:    "https://huggingface.co/datasets/stablefusiondance/WorldBankDataDive2025/resolve/main/GlobalFindexDatabase2025.csv",
				Expect: []string{"codewb", "countrynewwb", "year", "group", "pop_adult", "internet"},
			},
			SourceWAUCurve: {
				Path:   "data/wau_share_by_gdp.csv",
				Expect: []string{"time_period", "gdp_per_capita_thousands_usd", "median_wau_share_internet_users"},
			},
			SourceWWBI: {
				Path:   "data/WWBICSV.csv",
				Expect: []string{"country_code", "indicator_code"},
			},
			SourceFLFP: {
				Path:     "data/API_SL.TLF.CACT.FE.ZS_DS2_en_csv_v2.csv",
				SkipRows: 4,
				Expect:   []string{"country_code"},
			},
			SourceUnemployment: {
				Path:     "data/API_SL.UEM.TOTL.FE.ZS_DS2_en_csv_v2.csv",
				SkipRows: 4,
				Expect:   []string{"country_code"},
			},
		},
		TimePeriod:     "May 2025",
		TimeoutSeconds: int(DefaultTimeout / time.Second),
	}
}

// Timeout returns the configured fetch timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Get returns a named source with its Name field populated.
func (c *Config) Get(name string) (Source, error) {
	src, ok := c.Sources[name]
	if !ok {
		return Source{}, fmt.Errorf("config: no source named %q", name)
	}
	src.Name = name
	return src, nil
}

// LoadConfig reads a YAML config file, filling unset fields from
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TimePeriod == "" {
		cfg.TimePeriod = DefaultConfig().TimePeriod
	}
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
