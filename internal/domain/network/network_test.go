package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmapping/hwdata/internal/domain/network"
)

func newTestRoute() *network.Route {
	sys := network.NewHighwaySystem("usai", "USA", "Interstate Highways", "#FF0000", 1, network.LevelActive)
	return network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95nyc", nil)
}

func TestNewWaypointRejectsEmptyLabel(t *testing.T) {
	r := newTestRoute()
	_, err := network.NewWaypoint(r, "", nil, 40, -74)
	assert.Error(t, err)
}

func TestNewWaypointHiddenPrefix(t *testing.T) {
	r := newTestRoute()
	w, err := network.NewWaypoint(r, "+US1", nil, 40, -74)
	require.NoError(t, err)
	assert.True(t, w.Hidden)
	assert.Equal(t, "us1", w.StrippedLabel())
}

func TestNewWaypointOutOfBounds(t *testing.T) {
	r := newTestRoute()
	w, err := network.NewWaypoint(r, "A", nil, 95, -74)
	require.NoError(t, err)
	assert.True(t, w.OutOfBounds)
}

func TestAppendPointBuildsSegments(t *testing.T) {
	r := newTestRoute()
	a, _ := network.NewWaypoint(r, "A", nil, 40, -74)
	b, _ := network.NewWaypoint(r, "B", nil, 41, -73)
	r.AppendPoint(a)
	r.AppendPoint(b)

	require.Len(t, r.Segments, 1)
	seg := r.Segments[0]
	assert.True(t, seg.HasEndpoints(a, b))
	assert.True(t, seg.HasEndpoints(b, a))
	assert.Greater(t, seg.Length(), 0.0)
	assert.Equal(t, 0, a.Index)
	assert.Equal(t, 1, b.Index)
}

func TestAddColocationGroupsGrow(t *testing.T) {
	r := newTestRoute()
	a, _ := network.NewWaypoint(r, "A", nil, 40, -74)
	b, _ := network.NewWaypoint(r, "B", nil, 40, -74)
	c, _ := network.NewWaypoint(r, "C", nil, 40, -74)

	network.AddColocation(a, b)
	network.AddColocation(a, c)

	assert.Equal(t, 3, a.NumColocated())
	assert.Same(t, a.Colocation, b.Colocation)
	assert.Same(t, a.Colocation, c.Colocation)
}

func TestAddNearMissSymmetric(t *testing.T) {
	r := newTestRoute()
	a, _ := network.NewWaypoint(r, "A", nil, 40, -74)
	b, _ := network.NewWaypoint(r, "B", nil, 40.0001, -74)

	network.AddNearMiss(a, b)

	require.NotNil(t, a.NearMiss)
	require.NotNil(t, b.NearMiss)
	assert.Same(t, b, a.NearMiss.Members[0])
	assert.Same(t, a, b.NearMiss.Members[0])
}

func TestMergeConcurrencyFreshGroup(t *testing.T) {
	r1 := newTestRoute()
	r2 := network.NewRoute(r1.System, "nyc", "US-1", "", "", "", "us1nyc", nil)
	a, _ := network.NewWaypoint(r1, "A", nil, 40, -74)
	b, _ := network.NewWaypoint(r1, "B", nil, 41, -73)
	c, _ := network.NewWaypoint(r2, "A", nil, 40, -74)
	d, _ := network.NewWaypoint(r2, "B", nil, 41, -73)
	r1.AppendPoint(a)
	r1.AppendPoint(b)
	r2.AppendPoint(c)
	r2.AppendPoint(d)

	network.MergeConcurrency(r1.Segments[0], r2.Segments[0])

	overall, activePreview, activeOnly, systemLocal := r1.Segments[0].ConcurrencyCounts()
	assert.Equal(t, 2, overall)
	assert.Equal(t, 2, activePreview)
	assert.Equal(t, 2, activeOnly)
	assert.Equal(t, 2, systemLocal)
}

func TestConcurrencyCountsNoGroup(t *testing.T) {
	r := newTestRoute()
	a, _ := network.NewWaypoint(r, "A", nil, 40, -74)
	b, _ := network.NewWaypoint(r, "B", nil, 41, -73)
	r.AppendPoint(a)
	r.AppendPoint(b)

	overall, activePreview, activeOnly, systemLocal := r.Segments[0].ConcurrencyCounts()
	assert.Equal(t, 1, overall)
	assert.Equal(t, 1, activePreview)
	assert.Equal(t, 1, activeOnly)
	assert.Equal(t, 1, systemLocal)
}

func TestAddClinchedByIsIdempotent(t *testing.T) {
	r := newTestRoute()
	a, _ := network.NewWaypoint(r, "A", nil, 40, -74)
	b, _ := network.NewWaypoint(r, "B", nil, 41, -73)
	r.AppendPoint(a)
	r.AppendPoint(b)

	seg := r.Segments[0]
	assert.True(t, seg.AddClinchedBy("traveler1"))
	assert.False(t, seg.AddClinchedBy("traveler1"))
	assert.True(t, seg.AddClinchedBy("traveler2"))
}

func TestConnectedRouteAssignsPositions(t *testing.T) {
	sys := network.NewHighwaySystem("usai", "USA", "Interstate Highways", "#FF0000", 1, network.LevelActive)
	r1 := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95nyc", nil)
	r2 := network.NewRoute(sys, "nj", "I-95", "", "", "", "i95nj", nil)
	cr := network.NewConnectedRoute(sys, "I-95", "", "I-95", []*network.Route{r1, r2})

	assert.Equal(t, 0, r1.Position)
	assert.Equal(t, 1, r2.Position)
	assert.Len(t, cr.Routes, 2)
}

func TestHighwaySystemActiveOrPreview(t *testing.T) {
	active := network.NewHighwaySystem("usai", "USA", "Interstates", "", 1, network.LevelActive)
	devel := network.NewHighwaySystem("usax", "USA", "Devel System", "", 1, network.LevelDevel)

	assert.True(t, active.ActiveOrPreview())
	assert.False(t, devel.ActiveOrPreview())
}

func TestRouteByRoot(t *testing.T) {
	sys := network.NewHighwaySystem("usai", "USA", "Interstates", "", 1, network.LevelActive)
	r := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95nyc", nil)
	sys.Routes = append(sys.Routes, r)

	assert.Same(t, r, sys.RouteByRoot("i95nyc"))
	assert.Nil(t, sys.RouteByRoot("missing"))
}
