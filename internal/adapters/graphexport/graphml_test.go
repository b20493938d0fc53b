package graphexport_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmapping/hwdata/internal/adapters/graphexport"
	"github.com/travelmapping/hwdata/internal/domain/network"
)

func TestWriteProducesOneNodePerColocatedGroup(t *testing.T) {
	sys := network.NewHighwaySystem("usai", "USA", "Interstates", "", 1, network.LevelActive)
	r1 := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95a", nil)
	r2 := network.NewRoute(sys, "nyc", "I-95", "", "", "", "i95b", nil)
	sys.Routes = append(sys.Routes, r1, r2)

	a1, _ := network.NewWaypoint(r1, "A", nil, 40.0, -75.0)
	b1, _ := network.NewWaypoint(r1, "B", nil, 40.1, -75.1)
	r1.AppendPoint(a1)
	r1.AppendPoint(b1)

	a2, _ := network.NewWaypoint(r2, "A", nil, 40.0, -75.0)
	b2, _ := network.NewWaypoint(r2, "C", nil, 40.2, -75.2)
	r2.AppendPoint(a2)
	r2.AppendPoint(b2)

	network.AddColocation(a1, a2)

	var buf bytes.Buffer
	require.NoError(t, graphexport.Write(&buf, []*network.HighwaySystem{sys}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Equal(t, 1, strings.Count(out, `id="i95a@A"`))
	assert.Equal(t, 0, strings.Count(out, `id="i95b@A"`))
	assert.Contains(t, out, `id="i95a@B"`)
	assert.Contains(t, out, `id="i95b@C"`)
}
