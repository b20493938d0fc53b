package validator

import (
	"github.com/travelmapping/hwdata/internal/domain/network"
	"github.com/travelmapping/hwdata/internal/domain/region"
	"github.com/travelmapping/hwdata/internal/domain/shared"
)

// CheckRouteRegions verifies that every route's Region field names a
// region present in regions, recording one fatal error via collector per
// distinct unknown region code (naming the first route that uses it).
// Grounded on original_source/regions.py's
// region/country/continent cross-check, run once catalog parsing
// completes and before the correlated network is handed to downstream
// consumers.
func CheckRouteRegions(routes []*network.Route, regions []region.Region, collector *shared.ErrorCollector) {
	known := make(map[string]bool, len(regions))
	for _, r := range regions {
		known[r.Code] = true
	}
	seen := make(map[string]bool)
	for _, r := range routes {
		if known[r.Region] || seen[r.Region] {
			continue
		}
		seen[r.Region] = true
		collector.Addf("route %s references unknown region %q", r.Root, r.Region)
	}
}
