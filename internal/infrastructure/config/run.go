package config

// RunConfig controls the correlation pipeline itself.
type RunConfig struct {
	// Workers is the number of goroutines reading systems concurrently.
	Workers int `mapstructure:"workers" validate:"min=1"`

	// NearMissTolerance overrides correlator.NearMissTolerance when
	// nonzero; left at zero it takes the package default.
	NearMissTolerance float64 `mapstructure:"near_miss_tolerance" validate:"omitempty,gt=0"`

	// SkipGraphExport, SkipStatsExport, and SkipDiagExport let a caller
	// run just the pieces they need, mirroring HighwayData's optional
	// output flags.
	SkipGraphExport bool `mapstructure:"skip_graph_export"`
	SkipStatsExport bool `mapstructure:"skip_stats_export"`
	SkipDiagExport  bool `mapstructure:"skip_diag_export"`
}
