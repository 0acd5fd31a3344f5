// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/technique-selector/internal/costmodel"
	"github.com/jonathan/technique-selector/internal/selection"
	"github.com/jonathan/technique-selector/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Catalog source
	CatalogPath string `json:"catalog_path,omitempty"` // Path to a JSON or YAML catalog file
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Behavior
	LogLevel string `json:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	Verbose  bool   `json:"verbose,omitempty"` // Print per-technique analysis

	Costs  CostConfig   `json:"costs"`
	Tuning TuningConfig `json:"tuning"`
}

// CostConfig overrides the cost/time table. Missing tiers keep their default estimate.
type CostConfig struct {
	Table              map[types.ComplexityTier]costmodel.Estimate `json:"table,omitempty"`
	BundleCostDiscount *float64                                    `json:"bundle_cost_discount,omitempty"`
	BundleTimeDiscount *float64                                    `json:"bundle_time_discount,omitempty"`
}

// TuningConfig overrides optimizer thresholds. Pointers distinguish an explicit zero
// (a zero tie-break window, bonus disabled) from an unset value.
type TuningConfig struct {
	HybridContributionFloor *float64 `json:"hybrid_contribution_floor,omitempty"`
	HybridContributionRatio *float64 `json:"hybrid_contribution_ratio,omitempty"`
	TieBreakWindow          *float64 `json:"tie_break_window,omitempty"`
	LowRiskCeiling          *float64 `json:"low_risk_ceiling,omitempty"`
	MaxBonusTechniques      *int     `json:"max_bonus_techniques,omitempty"`
}

var configValidator = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are not checked here; the CLI does that after merging flags.
func (c *Config) Validate() error {
	if c.CatalogPath != "" && c.DatabaseURL != "" {
		return fmt.Errorf("config error: 'catalog_path' and 'database_url' are mutually exclusive")
	}

	if err := configValidator.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			names := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				names = append(names, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("config error: invalid fields: %s", strings.Join(names, ", "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath)
		}
	}

	for tier := range c.Costs.Table {
		if !tier.Valid() {
			return fmt.Errorf("config error: unknown complexity tier %q in cost table", tier)
		}
	}
	if _, err := c.CostModel(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := c.SelectionTuning().Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	return nil
}

// CostModel builds the cost/time model, starting from the default table
func (c *Config) CostModel() (*costmodel.Model, error) {
	table := make(map[types.ComplexityTier]costmodel.Estimate, len(costmodel.DefaultTable))
	for tier, est := range costmodel.DefaultTable {
		table[tier] = est
	}
	for tier, est := range c.Costs.Table {
		table[tier] = est
	}

	costDiscount := costmodel.DefaultBundleCostDiscount
	if c.Costs.BundleCostDiscount != nil {
		costDiscount = *c.Costs.BundleCostDiscount
	}
	timeDiscount := costmodel.DefaultBundleTimeDiscount
	if c.Costs.BundleTimeDiscount != nil {
		timeDiscount = *c.Costs.BundleTimeDiscount
	}

	return costmodel.New(table, costDiscount, timeDiscount)
}

// SelectionTuning applies the configured overrides to the default thresholds
func (c *Config) SelectionTuning() selection.Tuning {
	t := selection.DefaultTuning()
	if v := c.Tuning.HybridContributionFloor; v != nil {
		t.HybridContributionFloor = *v
	}
	if v := c.Tuning.HybridContributionRatio; v != nil {
		t.HybridContributionRatio = *v
	}
	if v := c.Tuning.TieBreakWindow; v != nil {
		t.TieBreakWindow = *v
	}
	if v := c.Tuning.LowRiskCeiling; v != nil {
		t.LowRiskCeiling = *v
	}
	if v := c.Tuning.MaxBonusTechniques; v != nil {
		t.MaxBonusTechniques = *v
	}
	return t
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.CatalogPath == "" && result.DatabaseURL == "" {
		result.CatalogPath = defaults.CatalogPath
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogLevel == "" {
		result.LogLevel = "info"
	}

	// Cost table: per tier
	if len(defaults.Costs.Table) > 0 {
		table := make(map[types.ComplexityTier]costmodel.Estimate, len(defaults.Costs.Table))
		for tier, est := range defaults.Costs.Table {
			table[tier] = est
		}
		for tier, est := range c.Costs.Table {
			table[tier] = est
		}
		result.Costs.Table = table
	}
	if result.Costs.BundleCostDiscount == nil {
		result.Costs.BundleCostDiscount = defaults.Costs.BundleCostDiscount
	}
	if result.Costs.BundleTimeDiscount == nil {
		result.Costs.BundleTimeDiscount = defaults.Costs.BundleTimeDiscount
	}

	// Tuning: nil pointers take the default
	if result.Tuning.HybridContributionFloor == nil {
		result.Tuning.HybridContributionFloor = defaults.Tuning.HybridContributionFloor
	}
	if result.Tuning.HybridContributionRatio == nil {
		result.Tuning.HybridContributionRatio = defaults.Tuning.HybridContributionRatio
	}
	if result.Tuning.TieBreakWindow == nil {
		result.Tuning.TieBreakWindow = defaults.Tuning.TieBreakWindow
	}
	if result.Tuning.LowRiskCeiling == nil {
		result.Tuning.LowRiskCeiling = defaults.Tuning.LowRiskCeiling
	}
	if result.Tuning.MaxBonusTechniques == nil {
		result.Tuning.MaxBonusTechniques = defaults.Tuning.MaxBonusTechniques
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
