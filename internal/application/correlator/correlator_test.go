package correlator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmapping/hwdata/internal/application/correlator"
	"github.com/travelmapping/hwdata/internal/domain/network"
)

func buildTwoRoutesSharedEndpoints(t *testing.T) (*network.Route, *network.Route, *correlator.Index) {
	t.Helper()
	sys := network.NewHighwaySystem("usai", "USA", "Interstates", "", 1, network.LevelActive)
	a := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95a", nil)
	b := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95b", nil)

	idx := correlator.NewIndex()

	p1, _ := network.NewWaypoint(a, "P", nil, 40.0, -75.0)
	q1, _ := network.NewWaypoint(a, "Q", nil, 40.1, -75.1)
	a.AppendPoint(p1)
	idx.InsertAndCorrelate(p1)
	a.AppendPoint(q1)
	idx.InsertAndCorrelate(q1)

	p2, _ := network.NewWaypoint(b, "P", nil, 40.0, -75.0)
	q2, _ := network.NewWaypoint(b, "Q", nil, 40.1, -75.1)
	b.AppendPoint(p2)
	idx.InsertAndCorrelate(p2)
	b.AppendPoint(q2)
	idx.InsertAndCorrelate(q2)

	return a, b, idx
}

func TestInsertAndCorrelateFormsColocation(t *testing.T) {
	a, b, _ := buildTwoRoutesSharedEndpoints(t)
	require.NotNil(t, a.Points[0].Colocation)
	assert.Equal(t, 2, a.Points[0].NumColocated())
	assert.Same(t, a.Points[0].Colocation, b.Points[0].Colocation)
}

func TestFormConcurrenciesScenarioS1(t *testing.T) {
	a, b, _ := buildTwoRoutesSharedEndpoints(t)
	correlator.SortGroups([]*network.Waypoint{a.Points[0], a.Points[1], b.Points[0], b.Points[1]})
	correlator.FormConcurrencies([]*network.Route{a, b})

	require.NotNil(t, a.Segments[0].Concurrent)
	assert.Same(t, a.Segments[0].Concurrent, b.Segments[0].Concurrent)
	assert.Len(t, a.Segments[0].Concurrent.Members, 2)

	overall, _, _, _ := a.Segments[0].ConcurrencyCounts()
	assert.Equal(t, 2, overall)
}

func TestNearMissDetectedButNotMerged(t *testing.T) {
	sys := network.NewHighwaySystem("usai", "USA", "Interstates", "", 1, network.LevelActive)
	r := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95a", nil)
	idx := correlator.NewIndex()

	p, _ := network.NewWaypoint(r, "P", nil, 40.0, -75.0)
	r.AppendPoint(p)
	idx.InsertAndCorrelate(p)

	q, _ := network.NewWaypoint(r, "Q", nil, 40.00005, -75.00003)
	r.AppendPoint(q)
	idx.InsertAndCorrelate(q)

	assert.Nil(t, p.Colocation)
	require.NotNil(t, p.NearMiss)
	assert.Same(t, q, p.NearMiss.Members[0])
}
