package diagexport_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmapping/hwdata/internal/adapters/diagexport"
	"github.com/travelmapping/hwdata/internal/domain/datacheck"
	"github.com/travelmapping/hwdata/internal/domain/network"
)

func TestWriteDatacheckLogSkipsFalsePositives(t *testing.T) {
	real := datacheck.New("i95nyc", "A", "B", "", datacheck.LongSegment, "25.0")
	fp := datacheck.New("i95nyc", "C", "D", "", datacheck.LongSegment, "25.0")
	fp.FalsePositive = true

	var buf bytes.Buffer
	require.NoError(t, diagexport.WriteDatacheckLog(&buf, []*datacheck.Entry{real, fp}))

	gz, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	out, err := io.ReadAll(gz)
	require.NoError(t, err)

	assert.Contains(t, string(out), real.String())
	assert.NotContains(t, string(out), "C;D")
}

func TestWriteNearMissLogListsNeighborsSorted(t *testing.T) {
	sys := network.NewHighwaySystem("usai", "USA", "Interstates", "", 1, network.LevelActive)
	r := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95nyc", nil)
	a, _ := network.NewWaypoint(r, "A", nil, 40.00000, -75.00000)
	b, _ := network.NewWaypoint(r, "B", nil, 40.00010, -75.00010)
	r.AppendPoint(a)
	r.AppendPoint(b)
	network.AddNearMiss(a, b)

	var buf bytes.Buffer
	require.NoError(t, diagexport.WriteNearMissLog(&buf, []*network.Waypoint{a, b}))

	gz, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	out, err := io.ReadAll(gz)
	require.NoError(t, err)

	assert.Contains(t, string(out), "i95nyc@A NMP i95nyc@B")
	assert.Contains(t, string(out), "i95nyc@B NMP i95nyc@A")
}
