package config

import (
	"os"
	"time"
)

// SetDefaults sets default values for the database, run and logging
// fields. The path fields get no default; ValidateConfig requires
// DataRoot and OutputDir to be set.
func SetDefaults(cfg *Config) {
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = filepathDefaultDB(cfg)
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	if cfg.Run.Workers == 0 {
		cfg.Run.Workers = 4
	}
	if cfg.Run.NearMissTolerance == 0 {
		cfg.Run.NearMissTolerance = 0.0005
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// filepathDefaultDB only runs when the database type is sqlite and no
// explicit path was configured; it keeps the database alongside the
// configured output directory so a run is self-contained.
func filepathDefaultDB(cfg *Config) string {
	if cfg.Database.Type != "sqlite" {
		return ""
	}
	dir := cfg.Paths.OutputDir
	if dir == "" {
		dir = "."
	}
	return dir + string(os.PathSeparator) + "hwdata.db"
}
