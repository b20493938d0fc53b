// Package traveler holds the Traveler domain type: a named user and the
// set of HighwaySegments they have clinched, as resolved by the
// travelermatcher application package from their list file. Grounded on
// original_source/siteupdate's per-traveler clinched-list bookkeeping.
package traveler

import "github.com/travelmapping/hwdata/internal/domain/network"

// Traveler is one user's clinched-mileage record. The four mileage
// accumulators mirror the route/region totals computed by the mileage
// aggregator but scoped to what this traveler has clinched;
// RegionMileages is credited only when the owning system is active or
// preview, matching the per-system-per-region rule.
type Traveler struct {
	Name     string
	Clinched map[*network.HighwaySegment]bool

	OverallByRegion       map[string]float64
	ActivePreviewByRegion map[string]float64
	ActiveOnlyByRegion    map[string]float64
	RegionMileages        map[string]map[string]float64 // system name -> region -> miles
}

// New builds an empty Traveler.
func New(name string) *Traveler {
	return &Traveler{
		Name:                  name,
		Clinched:              make(map[*network.HighwaySegment]bool),
		OverallByRegion:       make(map[string]float64),
		ActivePreviewByRegion: make(map[string]float64),
		ActiveOnlyByRegion:    make(map[string]float64),
		RegionMileages:        make(map[string]map[string]float64),
	}
}

// Credit records that t has clinched s, returning false if it already had.
func (t *Traveler) Credit(s *network.HighwaySegment) bool {
	if t.Clinched[s] {
		return false
	}
	t.Clinched[s] = true
	s.AddClinchedBy(t.Name)
	return true
}

// AddOverall credits miles to the traveler's unconditional per-region total.
func (t *Traveler) AddOverall(region string, miles float64) {
	t.OverallByRegion[region] += miles
}

// AddActivePreview credits miles to the traveler's active-or-preview
// per-region total.
func (t *Traveler) AddActivePreview(region string, miles float64) {
	t.ActivePreviewByRegion[region] += miles
}

// AddActiveOnly credits miles to the traveler's active-only per-region total.
func (t *Traveler) AddActiveOnly(region string, miles float64) {
	t.ActiveOnlyByRegion[region] += miles
}

// AddRegionMileage credits miles to the traveler's per-system-per-region
// total; callers only invoke this for active-or-preview systems.
func (t *Traveler) AddRegionMileage(systemName, region string, miles float64) {
	if t.RegionMileages[systemName] == nil {
		t.RegionMileages[systemName] = make(map[string]float64)
	}
	t.RegionMileages[systemName][region] += miles
}

// ClinchedCount returns the number of distinct segments t has clinched.
func (t *Traveler) ClinchedCount() int {
	return len(t.Clinched)
}
