package mileage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmapping/hwdata/internal/application/correlator"
	"github.com/travelmapping/hwdata/internal/application/mileage"
	"github.com/travelmapping/hwdata/internal/domain/network"
	"github.com/travelmapping/hwdata/internal/domain/traveler"
)

// TestScenarioS1MileageConservation covers two routes sharing one
// concurrent segment; overall_by_region should receive L/2 from each
// route's contribution, summing to the segment's physical length.
func TestScenarioS1MileageConservation(t *testing.T) {
	sys := network.NewHighwaySystem("usai", "USA", "Interstates", "", 1, network.LevelActive)
	r1 := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95a", nil)
	r2 := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95b", nil)
	sys.Routes = append(sys.Routes, r1, r2)

	idx := correlator.NewIndex()
	p1, _ := network.NewWaypoint(r1, "P", nil, 40.0, -75.0)
	q1, _ := network.NewWaypoint(r1, "Q", nil, 40.1, -75.1)
	r1.AppendPoint(p1)
	idx.InsertAndCorrelate(p1)
	r1.AppendPoint(q1)
	idx.InsertAndCorrelate(q1)

	p2, _ := network.NewWaypoint(r2, "P", nil, 40.0, -75.0)
	q2, _ := network.NewWaypoint(r2, "Q", nil, 40.1, -75.1)
	r2.AppendPoint(p2)
	idx.InsertAndCorrelate(p2)
	r2.AppendPoint(q2)
	idx.InsertAndCorrelate(q2)

	correlator.FormConcurrencies([]*network.Route{r1, r2})

	totals := mileage.Aggregate([]*network.Route{r1, r2}, nil)

	length := r1.Segments[0].Length()
	assert.InDelta(t, length, r1.Mileage, 1e-9)
	assert.InDelta(t, length, r2.Mileage, 1e-9)
	assert.InDelta(t, length, totals.Overall["nyc"], 1e-6)
	assert.LessOrEqual(t, totals.ActiveOnly["nyc"], totals.ActivePreview["nyc"]+1e-9)
	assert.LessOrEqual(t, totals.ActivePreview["nyc"], totals.Overall["nyc"]+1e-9)
}

func TestAggregateCreditsTravelers(t *testing.T) {
	sys := network.NewHighwaySystem("usai", "USA", "Interstates", "", 1, network.LevelActive)
	r := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95nyc", nil)
	sys.Routes = append(sys.Routes, r)

	a, _ := network.NewWaypoint(r, "A", nil, 40.0, -75.0)
	b, _ := network.NewWaypoint(r, "B", nil, 40.1, -75.0)
	r.AppendPoint(a)
	r.AppendPoint(b)

	tr := traveler.New("alice")
	require.True(t, tr.Credit(r.Segments[0]))

	totals := mileage.Aggregate([]*network.Route{r}, map[string]*traveler.Traveler{"alice": tr})

	length := r.Segments[0].Length()
	assert.InDelta(t, length, totals.Overall["nyc"], 1e-9)
	assert.InDelta(t, length, tr.OverallByRegion["nyc"], 1e-9)
	assert.InDelta(t, length, tr.ActivePreviewByRegion["nyc"], 1e-9)
	assert.InDelta(t, length, tr.ActiveOnlyByRegion["nyc"], 1e-9)
	assert.InDelta(t, length, tr.RegionMileages["usai"]["nyc"], 1e-9)
}
