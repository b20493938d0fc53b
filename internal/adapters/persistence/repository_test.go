package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmapping/hwdata/internal/adapters/persistence"
	"github.com/travelmapping/hwdata/internal/application/correlator"
	"github.com/travelmapping/hwdata/internal/domain/datacheck"
	"github.com/travelmapping/hwdata/internal/domain/network"
	"github.com/travelmapping/hwdata/internal/domain/traveler"
	"github.com/travelmapping/hwdata/internal/infrastructure/database"
)

func TestNetworkRepositorySaveAllPersistsEverything(t *testing.T) {
	db, err := database.NewTestConnection()
	require.NoError(t, err)

	sys := network.NewHighwaySystem("usai", "USA", "Interstates", "", 1, network.LevelActive)
	r := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95nyc", nil)
	sys.Routes = append(sys.Routes, r)

	a, _ := network.NewWaypoint(r, "A", nil, 40.0, -75.0)
	b, _ := network.NewWaypoint(r, "B", nil, 40.1, -75.1)
	r.AppendPoint(a)
	idx := correlator.NewIndex()
	idx.InsertAndCorrelate(a)
	r.AppendPoint(b)
	idx.InsertAndCorrelate(b)

	tr := traveler.New("alice")
	require.True(t, tr.Credit(r.Segments[0]))
	tr.AddOverall("nyc", r.Segments[0].Length())

	entry := datacheck.New("i95nyc", "A", "B", "", datacheck.LongSegment, "10.0")

	repo := persistence.NewNetworkRepository(db)
	err = repo.SaveAll(context.Background(),
		[]*network.HighwaySystem{sys},
		map[string]*traveler.Traveler{"alice": tr},
		[]*datacheck.Entry{entry},
	)
	require.NoError(t, err)

	var systemCount, routeCount, waypointCount, segmentCount, travelerCount, datacheckCount int64
	require.NoError(t, db.Model(&persistence.SystemModel{}).Count(&systemCount).Error)
	require.NoError(t, db.Model(&persistence.RouteModel{}).Count(&routeCount).Error)
	require.NoError(t, db.Model(&persistence.WaypointModel{}).Count(&waypointCount).Error)
	require.NoError(t, db.Model(&persistence.SegmentModel{}).Count(&segmentCount).Error)
	require.NoError(t, db.Model(&persistence.TravelerModel{}).Count(&travelerCount).Error)
	require.NoError(t, db.Model(&persistence.DatacheckModel{}).Count(&datacheckCount).Error)

	assert.EqualValues(t, 1, systemCount)
	assert.EqualValues(t, 1, routeCount)
	assert.EqualValues(t, 2, waypointCount)
	assert.EqualValues(t, 1, segmentCount)
	assert.EqualValues(t, 1, travelerCount)
	assert.EqualValues(t, 1, datacheckCount)

	var waypointRow persistence.WaypointModel
	require.NoError(t, db.First(&waypointRow, "waypoint_key = ?", "i95nyc@A").Error)
	assert.InDelta(t, 40.0, waypointRow.Latitude, 1e-9)
}
