package traveler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/travelmapping/hwdata/internal/domain/network"
	"github.com/travelmapping/hwdata/internal/domain/traveler"
)

func TestCreditIsIdempotent(t *testing.T) {
	sys := network.NewHighwaySystem("usai", "USA", "Interstates", "", 1, network.LevelActive)
	r := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95nyc", nil)
	a, _ := network.NewWaypoint(r, "A", nil, 40, -74)
	b, _ := network.NewWaypoint(r, "B", nil, 41, -73)
	r.AppendPoint(a)
	r.AppendPoint(b)

	tr := traveler.New("alice")
	assert.True(t, tr.Credit(r.Segments[0]))
	assert.False(t, tr.Credit(r.Segments[0]))
	assert.Equal(t, 1, tr.ClinchedCount())
	assert.True(t, r.Segments[0].ClinchedBy["alice"])
}

func TestMileageAccumulators(t *testing.T) {
	tr := traveler.New("alice")
	tr.AddOverall("nyc", 10.5)
	tr.AddOverall("nyc", 2.5)
	tr.AddActivePreview("nyc", 13.0)
	tr.AddActiveOnly("nyc", 13.0)
	tr.AddRegionMileage("usai", "nyc", 13.0)

	assert.InDelta(t, 13.0, tr.OverallByRegion["nyc"], 1e-9)
	assert.InDelta(t, 13.0, tr.ActivePreviewByRegion["nyc"], 1e-9)
	assert.InDelta(t, 13.0, tr.ActiveOnlyByRegion["nyc"], 1e-9)
	assert.InDelta(t, 13.0, tr.RegionMileages["usai"]["nyc"], 1e-9)
}
