package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/technique-selector/internal/costmodel"
	"github.com/jonathan/technique-selector/internal/selection"
	"github.com/jonathan/technique-selector/internal/types"
)

func ptr[T any](v T) *T { return &v }

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"database_url": "postgres://localhost/techniques",
		"log_level": "debug",
		"verbose": true,
		"costs": {
			"table": {"expert": {"cost": 800, "time": 25}},
			"bundle_cost_discount": 0.25
		},
		"tuning": {"tie_break_window": 0, "max_bonus_techniques": 1}
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres://localhost/techniques", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, costmodel.Estimate{Cost: 800, Time: 25}, cfg.Costs.Table[types.ComplexityExpert])
	require.NotNil(t, cfg.Costs.BundleCostDiscount)
	assert.Equal(t, 0.25, *cfg.Costs.BundleCostDiscount)
	require.NotNil(t, cfg.Tuning.TieBreakWindow)
	assert.Equal(t, 0.0, *cfg.Tuning.TieBreakWindow)
	assert.Nil(t, cfg.Tuning.LowRiskCeiling)
}

func TestLoadConfig_UnknownTier(t *testing.T) {
	content := `{"costs": {"table": {"legendary": {"cost": 1, "time": 1}}}}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	catalogFile := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogFile, []byte("techniques: []\n"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty", cfg: Config{}},
		{name: "valid", cfg: Config{CatalogPath: catalogFile, LogLevel: "warn", Tuning: TuningConfig{TieBreakWindow: ptr(0.0)}}},
		{name: "mutually exclusive", cfg: Config{CatalogPath: catalogFile, DatabaseURL: "postgres://x"}, wantErr: "mutually exclusive"},
		{name: "bad log level", cfg: Config{LogLevel: "loud"}, wantErr: "LogLevel (oneof)"},
		{name: "missing catalog", cfg: Config{CatalogPath: "/nonexistent/catalog.yaml"}, wantErr: "catalog file not found"},
		{name: "unknown tier", cfg: Config{Costs: CostConfig{Table: map[types.ComplexityTier]costmodel.Estimate{"legendary": {}}}}, wantErr: "unknown complexity tier"},
		{name: "negative cost", cfg: Config{Costs: CostConfig{Table: map[types.ComplexityTier]costmodel.Estimate{types.ComplexitySimple: {Cost: -1}}}}, wantErr: "non-negative"},
		{name: "discount out of range", cfg: Config{Costs: CostConfig{BundleTimeDiscount: ptr(1.0)}}, wantErr: "bundle time discount"},
		{name: "tuning out of range", cfg: Config{Tuning: TuningConfig{LowRiskCeiling: ptr(150.0)}}, wantErr: "invalid tuning"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCostModel(t *testing.T) {
	cfg := Config{Costs: CostConfig{
		Table:              map[types.ComplexityTier]costmodel.Estimate{types.ComplexityExpert: {Cost: 800, Time: 25}},
		BundleCostDiscount: ptr(0.5),
	}}

	m, err := cfg.CostModel()
	require.NoError(t, err)

	assert.Equal(t, 800, m.Cost(types.ComplexityExpert))
	assert.Equal(t, 50, m.Cost(types.ComplexitySimple), "untouched tiers keep the default")
	members := []types.Technique{{Complexity: types.ComplexitySimple}, {Complexity: types.ComplexitySimple}}
	assert.Equal(t, 50, m.BundleCost(members))
	assert.Equal(t, 3, m.BundleTime(members))
}

func TestSelectionTuning(t *testing.T) {
	assert.Equal(t, selection.DefaultTuning(), (&Config{}).SelectionTuning())

	cfg := Config{Tuning: TuningConfig{TieBreakWindow: ptr(0.0), MaxBonusTechniques: ptr(0)}}
	tuning := cfg.SelectionTuning()

	assert.Equal(t, 0.0, tuning.TieBreakWindow)
	assert.Equal(t, 0, tuning.MaxBonusTechniques)
	assert.Equal(t, selection.DefaultTuning().LowRiskCeiling, tuning.LowRiskCeiling)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		CatalogPath: "default.yaml",
		LogLevel:    "warn",
		Costs: CostConfig{
			Table: map[types.ComplexityTier]costmodel.Estimate{
				types.ComplexitySimple: {Cost: 60, Time: 3},
				types.ComplexityExpert: {Cost: 700, Time: 22},
			},
			BundleCostDiscount: ptr(0.1),
		},
		Tuning: TuningConfig{TieBreakWindow: ptr(2.0), LowRiskCeiling: ptr(25.0)},
	}

	partial := Config{
		DatabaseURL: "postgres://custom",
		Costs: CostConfig{Table: map[types.ComplexityTier]costmodel.Estimate{
			types.ComplexityExpert: {Cost: 900, Time: 30},
		}},
		Tuning: TuningConfig{TieBreakWindow: ptr(0.0)},
	}

	merged := partial.MergeWithDefaults(defaults)

	// A configured database replaces the default catalog source entirely
	assert.Equal(t, "postgres://custom", merged.DatabaseURL)
	assert.Empty(t, merged.CatalogPath)

	assert.Equal(t, "warn", merged.LogLevel)
	assert.Equal(t, costmodel.Estimate{Cost: 60, Time: 3}, merged.Costs.Table[types.ComplexitySimple])
	assert.Equal(t, costmodel.Estimate{Cost: 900, Time: 30}, merged.Costs.Table[types.ComplexityExpert])
	assert.Equal(t, 0.1, *merged.Costs.BundleCostDiscount)
	assert.Equal(t, 0.0, *merged.Tuning.TieBreakWindow)
	assert.Equal(t, 25.0, *merged.Tuning.LowRiskCeiling)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{CatalogPath: "catalog.yaml"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "catalog.yaml", merged.CatalogPath)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Nil(t, merged.Costs.Table)
	assert.Nil(t, merged.Tuning.TieBreakWindow)
}
