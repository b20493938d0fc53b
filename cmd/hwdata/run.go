package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/travelmapping/hwdata/internal/adapters/diagexport"
	"github.com/travelmapping/hwdata/internal/adapters/graphexport"
	"github.com/travelmapping/hwdata/internal/adapters/grpcserver"
	"github.com/travelmapping/hwdata/internal/adapters/notify"
	"github.com/travelmapping/hwdata/internal/adapters/persistence"
	"github.com/travelmapping/hwdata/internal/adapters/statsexport"
	"github.com/travelmapping/hwdata/internal/domain/network"
	"github.com/travelmapping/hwdata/internal/infrastructure/config"
	"github.com/travelmapping/hwdata/internal/infrastructure/database"
)

// collectWaypoints flattens every route's point list into one slice, the
// form diagexport.WriteNearMissLog expects.
func collectWaypoints(routes []*network.Route) []*network.Waypoint {
	var points []*network.Waypoint
	for _, r := range routes {
		points = append(points, r.Points...)
	}
	return points
}

var healthAddr string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full correlation pipeline: parse, correlate, validate, persist, and export",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&healthAddr, "health-addr", "", "address to serve a gRPC readiness probe on (e.g. :50051); empty disables it")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	runID := uuid.New().String()
	start := time.Now()

	fmt.Println("hwdata run " + runID)
	fmt.Println("Loading configuration...")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	var health *grpcserver.Server
	if healthAddr != "" {
		health, err = grpcserver.NewServer(healthAddr)
		if err != nil {
			return fmt.Errorf("failed to start readiness probe: %w", err)
		}
		go func() {
			if err := health.Serve(); err != nil {
				fmt.Fprintf(os.Stderr, "readiness probe stopped: %v\n", err)
			}
		}()
		defer health.Stop()
		fmt.Println("Readiness probe listening on " + health.Addr())
	}

	result, err := runPipeline(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Println("Connecting to " + cfg.Database.Type + " database...")
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	fmt.Println("Persisting correlated network...")
	repo := persistence.NewNetworkRepository(db)
	if err := repo.SaveAll(context.Background(), result.Systems, result.Travelers, result.Datachecks); err != nil {
		return fmt.Errorf("failed to persist network: %w", err)
	}

	if !cfg.Run.SkipGraphExport {
		if err := writeExport(filepath.Join(cfg.Paths.OutputDir, "network.graphml"), func(f *os.File) error {
			return graphexport.Write(f, result.Systems)
		}); err != nil {
			return err
		}
		fmt.Println("Wrote GraphML export")
	}

	if !cfg.Run.SkipStatsExport {
		if err := writeExport(filepath.Join(cfg.Paths.OutputDir, "region_totals.csv"), func(f *os.File) error {
			return statsexport.WriteRegionTotals(f, result.Totals)
		}); err != nil {
			return err
		}
		if err := writeExport(filepath.Join(cfg.Paths.OutputDir, "system_region_mileages.csv"), func(f *os.File) error {
			return statsexport.WriteSystemRegionMileages(f, result.Systems)
		}); err != nil {
			return err
		}
		if err := writeExport(filepath.Join(cfg.Paths.OutputDir, "traveler_mileages.csv"), func(f *os.File) error {
			return statsexport.WriteTravelers(f, result.Travelers)
		}); err != nil {
			return err
		}
		fmt.Println("Wrote statistics CSVs")
	}

	if !cfg.Run.SkipDiagExport {
		if err := writeExport(filepath.Join(cfg.Paths.OutputDir, "datacheck.log.gz"), func(f *os.File) error {
			return diagexport.WriteDatacheckLog(f, result.Datachecks)
		}); err != nil {
			return err
		}

		if err := writeExport(filepath.Join(cfg.Paths.OutputDir, "nearmisspoints.log.gz"), func(f *os.File) error {
			return diagexport.WriteNearMissLog(f, collectWaypoints(result.Routes))
		}); err != nil {
			return err
		}
		fmt.Println("Wrote diagnostic logs")
	}

	if cfg.Notify.Enabled {
		pub, err := notify.NewPublisher(cfg.Notify)
		if err != nil {
			return fmt.Errorf("failed to connect notification publisher: %w", err)
		}
		if pub != nil {
			defer pub.Close()
			summary := notify.RunSummary{
				SystemCount:    len(result.Systems),
				RouteCount:     len(result.Routes),
				DatacheckCount: len(result.Datachecks),
				TotalMiles:     result.Totals.Sum(),
				DurationMs:     time.Since(start).Milliseconds(),
			}
			if err := pub.Publish(summary); err != nil {
				fmt.Fprintf(os.Stderr, "failed to publish completion notification: %v\n", err)
			} else {
				fmt.Println("Published completion notification")
			}
		}
	}

	if health != nil {
		health.SetServing()
	}

	fmt.Printf("Done: %s systems, %s routes, %s datacheck entries, %s miles in %s\n",
		humanize.Comma(int64(len(result.Systems))),
		humanize.Comma(int64(len(result.Routes))),
		humanize.Comma(int64(len(result.Datachecks))),
		humanize.CommafWithDigits(result.Totals.Sum(), 2),
		time.Since(start).Round(time.Millisecond),
	)
	return nil
}

func writeExport(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
