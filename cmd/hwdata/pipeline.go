package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/travelmapping/hwdata/internal/application/correlator"
	"github.com/travelmapping/hwdata/internal/application/mileage"
	"github.com/travelmapping/hwdata/internal/application/parser"
	"github.com/travelmapping/hwdata/internal/application/travelermatcher"
	"github.com/travelmapping/hwdata/internal/application/validator"
	"github.com/travelmapping/hwdata/internal/domain/datacheck"
	"github.com/travelmapping/hwdata/internal/domain/network"
	"github.com/travelmapping/hwdata/internal/domain/shared"
	"github.com/travelmapping/hwdata/internal/domain/traveler"
	"github.com/travelmapping/hwdata/internal/infrastructure/config"
)

// pipelineResult is everything a correlation run produces, handed to
// whichever exporters the caller wants to run.
type pipelineResult struct {
	Systems    []*network.HighwaySystem
	Routes     []*network.Route
	Travelers  map[string]*traveler.Traveler
	Datachecks []*datacheck.Entry
	Totals     *mileage.RegionTotals
	Collector  *shared.ErrorCollector
}

// runPipeline reads cfg.Paths.DataRoot, correlates the network, validates
// every route, reconciles false positives, resolves traveler clinched
// mileage, and aggregates totals. It does not persist or export
// anything; callers decide what to do with the result.
func runPipeline(cfg *config.Config) (*pipelineResult, error) {
	collector := shared.NewErrorCollector()
	root := cfg.Paths.DataRoot

	fmt.Println("Reading region, country, and continent descriptions...")
	continents, err := parser.ParseContinents(filepath.Join(root, "continents.csv"), collector)
	if err != nil {
		return nil, fmt.Errorf("failed to read continents.csv: %w", err)
	}
	countries, err := parser.ParseCountries(filepath.Join(root, "countries.csv"), collector)
	if err != nil {
		return nil, fmt.Errorf("failed to read countries.csv: %w", err)
	}
	regions, err := parser.ParseRegions(filepath.Join(root, "regions.csv"), countries, continents, collector)
	if err != nil {
		return nil, fmt.Errorf("failed to read regions.csv: %w", err)
	}

	fmt.Println("Reading system catalog...")
	systems, err := parser.ParseSystems(filepath.Join(root, "systems.csv"), collector)
	if err != nil {
		return nil, fmt.Errorf("failed to read systems.csv: %w", err)
	}

	var jobs []*parser.SystemJob
	for _, sys := range systems {
		routes, err := parser.ParseRouteCatalog(filepath.Join(root, sys.SystemName+".csv"), sys, collector)
		if err != nil {
			collector.Addf("%s: %v", sys.SystemName, err)
			continue
		}
		sys.Routes = append(sys.Routes, routes...)

		connFile := filepath.Join(root, sys.SystemName+"_con.csv")
		if _, statErr := os.Stat(connFile); statErr == nil {
			connected, err := parser.ParseConnectedRoutes(connFile, sys, collector)
			if err != nil {
				collector.Addf("%s: %v", sys.SystemName, err)
			} else {
				sys.ConnectedRoutes = append(sys.ConnectedRoutes, connected...)
			}
		}

		jobs = append(jobs, &parser.SystemJob{System: sys, WptDir: filepath.Join(root, sys.SystemName)})
	}

	var routes []*network.Route
	for _, sys := range systems {
		routes = append(routes, sys.Routes...)
	}
	validator.CheckRouteRegions(routes, regions, collector)

	fmt.Printf("Reading waypoint files with %d workers...\n", cfg.Run.Workers)
	index := correlator.NewIndexWithTolerance(cfg.Run.NearMissTolerance)
	parser.ReadSystemsConcurrently(jobs, cfg.Run.Workers, index, collector)

	if !collector.Empty() {
		return nil, fmt.Errorf("fatal errors during parse:\n%s", collector.Dump())
	}

	// The worker pool reads systems in nondeterministic order, so quadtree
	// buckets and colocation groups must be explicitly sorted by
	// root@label before anything downstream iterates them.
	index.Tree().Sort()
	correlator.SortGroups(index.Tree().PointList())

	fmt.Println("Forming concurrent route groups...")
	correlator.FormConcurrencies(routes)

	fmt.Println("Validating route geometry and labels...")
	entries := index.Datachecks()
	for _, r := range routes {
		entries = append(entries, validator.ValidateRoute(r)...)
	}

	if cfg.Paths.FalsePositives != "" {
		fmt.Println("Reconciling false positives...")
		fps, err := parser.ParseFPFile(cfg.Paths.FalsePositives, collector)
		if err != nil {
			return nil, fmt.Errorf("failed to read false-positive list: %w", err)
		}
		result := datacheck.Reconcile(entries, fps)
		for _, changed := range result.Changed {
			fmt.Printf("  changed false positive: %s\n", changed.String())
		}
	}

	fmt.Println("Matching traveler lists...")
	travelers, err := matchTravelers(cfg, systems)
	if err != nil {
		return nil, err
	}

	fmt.Println("Aggregating mileage...")
	totals := mileage.Aggregate(routes, travelers)

	return &pipelineResult{
		Systems:    systems,
		Routes:     routes,
		Travelers:  travelers,
		Datachecks: entries,
		Totals:     totals,
		Collector:  collector,
	}, nil
}

// matchTravelers reads every *.list file under paths.DataRoot/list_files
// and resolves it against the correlated route index. A traveler whose
// file is entirely unparseable is logged and skipped, never fatal.
func matchTravelers(cfg *config.Config, systems []*network.HighwaySystem) (map[string]*traveler.Traveler, error) {
	listDir := filepath.Join(cfg.Paths.DataRoot, "list_files")
	entries, err := os.ReadDir(listDir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*traveler.Traveler{}, nil
		}
		return nil, fmt.Errorf("failed to read list_files directory: %w", err)
	}

	idx := travelermatcher.BuildRouteIndex(systems)
	travelers := make(map[string]*traveler.Traveler)

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".list") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		travelerName := strings.TrimSuffix(name, ".list")
		lines, badLines, err := parser.ParseTravelerList(filepath.Join(listDir, name))
		if err != nil {
			fmt.Printf("  %s: %v (skipped)\n", travelerName, err)
			continue
		}
		for _, bad := range badLines {
			fmt.Printf("  %s:%d: malformed list line\n", travelerName, bad)
		}

		t := traveler.New(travelerName)
		travelermatcher.MatchAll(lines, idx, t)
		travelers[travelerName] = t
		fmt.Println("  " + travelermatcher.FormatMatchSummary(t, len(lines)))
	}

	return travelers, nil
}
