package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmapping/hwdata/internal/infrastructure/config"
)

func TestSetDefaultsFillsSQLiteDatabase(t *testing.T) {
	cfg := &config.Config{}
	cfg.Paths.OutputDir = "./out"
	config.SetDefaults(cfg)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "./out/hwdata.db", cfg.Database.Path)
	assert.Equal(t, 4, cfg.Run.Workers)
	assert.InDelta(t, 0.0005, cfg.Run.NearMissTolerance, 1e-12)
}

func TestValidateConfigRequiresDataRootAndOutputDir(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)

	err := config.ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DataRoot")
}

func TestValidateConfigAcceptsCompleteConfig(t *testing.T) {
	cfg := &config.Config{
		Paths: config.PathsConfig{DataRoot: "/data/hwdata", OutputDir: "/tmp/out"},
	}
	config.SetDefaults(cfg)

	require.NoError(t, config.ValidateConfig(cfg))
}

func TestValidateConfigRejectsUnknownDatabaseType(t *testing.T) {
	cfg := &config.Config{
		Paths:    config.PathsConfig{DataRoot: "/data/hwdata", OutputDir: "/tmp/out"},
		Database: config.DatabaseConfig{Type: "oracle"},
	}
	config.SetDefaults(cfg)
	cfg.Database.Type = "oracle"

	err := config.ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Type")
}

func TestValidateConfigRequiresNotifyURLWhenEnabled(t *testing.T) {
	cfg := &config.Config{
		Paths:  config.PathsConfig{DataRoot: "/data/hwdata", OutputDir: "/tmp/out"},
		Notify: config.NotifyConfig{Enabled: true},
	}
	config.SetDefaults(cfg)

	err := config.ValidateConfig(cfg)
	require.Error(t, err)
}
