// Package mileage computes per-route, per-system-per-region, per-region
// (overall / active+preview / active-only), and per-traveler mileage
// aggregation, discounting every segment's contribution by its
// concurrency count. Grounded on original_source/siteupdate's
// region-mileage accumulation pass.
package mileage

import (
	"github.com/travelmapping/hwdata/internal/domain/network"
	"github.com/travelmapping/hwdata/internal/domain/traveler"
)

// RegionTotals holds the three region-scoped accumulators: overall,
// active-or-preview, and active-only.
type RegionTotals struct {
	Overall       map[string]float64
	ActivePreview map[string]float64
	ActiveOnly    map[string]float64
}

// Sum returns the overall mileage across every region, the figure a
// top-level run summary reports.
func (t *RegionTotals) Sum() float64 {
	var total float64
	for _, miles := range t.Overall {
		total += miles
	}
	return total
}

func newRegionTotals() *RegionTotals {
	return &RegionTotals{
		Overall:       make(map[string]float64),
		ActivePreview: make(map[string]float64),
		ActiveOnly:    make(map[string]float64),
	}
}

// Aggregate walks every segment of every route exactly once, crediting
// the route, the region totals, the owning system's region-local
// mileage, and every clinching traveler's analogous accumulators.
// travelers maps a traveler's name (as recorded in HighwaySegment.
// ClinchedBy) to their Traveler record.
func Aggregate(routes []*network.Route, travelers map[string]*traveler.Traveler) *RegionTotals {
	totals := newRegionTotals()

	for _, r := range routes {
		for _, s := range r.Segments {
			creditSegment(r, s, totals, travelers)
		}
	}
	return totals
}

func creditSegment(r *network.Route, s *network.HighwaySegment, totals *RegionTotals, travelers map[string]*traveler.Traveler) {
	length := s.Length()
	overall, activePreview, activeOnly, systemLocal := s.ConcurrencyCounts()

	r.Mileage += length
	totals.Overall[r.Region] += length / float64(overall)

	sysActivePreview := r.System != nil && r.System.ActiveOrPreview()
	sysActiveOnly := r.System != nil && r.System.Level == network.LevelActive

	if sysActivePreview {
		totals.ActivePreview[r.Region] += length / float64(activePreview)
	}
	if sysActiveOnly {
		totals.ActiveOnly[r.Region] += length / float64(activeOnly)
	}
	if r.System != nil {
		r.System.AddMileage(r.Region, length/float64(systemLocal))
	}

	systemName := ""
	if r.System != nil {
		systemName = r.System.SystemName
	}

	for name := range s.ClinchedBy {
		t := travelers[name]
		if t == nil {
			continue
		}
		// The same overall/active-preview/active-only split applies to a
		// traveler's totals; system_region_mileages is only recorded
		// when the owning system is active or preview.
		t.AddOverall(r.Region, length/float64(overall))
		if sysActivePreview {
			t.AddActivePreview(r.Region, length/float64(activePreview))
			t.AddRegionMileage(systemName, r.Region, length/float64(systemLocal))
		}
		if sysActiveOnly {
			t.AddActiveOnly(r.Region, length/float64(activeOnly))
		}
	}
}
