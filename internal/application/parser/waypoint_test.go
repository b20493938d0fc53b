package parser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmapping/hwdata/internal/application/correlator"
	"github.com/travelmapping/hwdata/internal/application/parser"
	"github.com/travelmapping/hwdata/internal/domain/datacheck"
	"github.com/travelmapping/hwdata/internal/domain/network"
)

func TestParseWaypointFileValidLines(t *testing.T) {
	sys := network.NewHighwaySystem("usai", "USA", "Interstates", "", 1, network.LevelActive)
	route := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95nyc", nil)

	content := "A http://www.openstreetmap.org/?lat=40.0&lon=-75.0\n" +
		"B ALT http://www.openstreetmap.org/?lat=40.1&lon=-75.1\n"
	path := filepath.Join(t.TempDir(), "i95nyc.wpt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	idx := correlator.NewIndex()
	entries, err := parser.ParseWaypointFile(path, "i95nyc", route, idx.InsertAndCorrelate)
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.Len(t, route.Points, 2)
	assert.Equal(t, "A", route.Points[0].Label)
	assert.InDelta(t, 40.0, route.Points[0].Lat, 1e-9)
	assert.Equal(t, []string{"ALT"}, route.Points[1].AltLabels)
	require.Len(t, route.Segments, 1)
}

func TestParseWaypointFileMalformedURLSkipsPoint(t *testing.T) {
	sys := network.NewHighwaySystem("usai", "USA", "Interstates", "", 1, network.LevelActive)
	route := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95nyc", nil)

	content := "A http://www.openstreetmap.org/?lat=1..5&lon=2\n" +
		"B http://www.openstreetmap.org/?lat=40.1&lon=-75.1\n"
	path := filepath.Join(t.TempDir(), "i95nyc.wpt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	idx := correlator.NewIndex()
	entries, err := parser.ParseWaypointFile(path, "i95nyc", route, idx.InsertAndCorrelate)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, datacheck.MalformedURL, entries[0].Code)
	require.Len(t, route.Points, 1)
	assert.Equal(t, "B", route.Points[0].Label)
	assert.Empty(t, route.Segments)
}

func TestParseWaypointFileBusWithI(t *testing.T) {
	sys := network.NewHighwaySystem("usai", "USA", "Interstates", "", 1, network.LevelActive)
	route := network.NewRoute(sys, "nyc", "I-90", "", "", "", "i90bos", nil)

	content := "A http://www.openstreetmap.org/?lat=40.0&lon=-75.0\n" +
		"I-90Bus http://www.openstreetmap.org/?lat=40.1&lon=-75.1\n"
	path := filepath.Join(t.TempDir(), "i90bos.wpt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	idx := correlator.NewIndex()
	_, err := parser.ParseWaypointFile(path, "i90bos", route, idx.InsertAndCorrelate)
	require.NoError(t, err)
	require.Len(t, route.Points, 2)
	assert.Equal(t, "I-90Bus", route.Points[1].Label)
}
