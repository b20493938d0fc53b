package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmapping/hwdata/internal/application/parser"
	"github.com/travelmapping/hwdata/internal/domain/datacheck"
	"github.com/travelmapping/hwdata/internal/domain/shared"
)

func TestParseFPFile(t *testing.T) {
	path := writeTemp(t, "fps.csv", "# comment\n"+
		"i95nyc;A;B;;LONG_SEGMENT;25.00\n\n")

	collector := shared.NewErrorCollector()
	fps, err := parser.ParseFPFile(path, collector)
	require.NoError(t, err)
	require.Len(t, fps, 1)
	assert.Equal(t, datacheck.LongSegment, fps[0].Code)
	assert.True(t, collector.Empty())
}

func TestParseFPFileRejectsAlwaysErrorCode(t *testing.T) {
	path := writeTemp(t, "fps.csv", "i95nyc;A;B;;MALFORMED_URL;bad\n")

	collector := shared.NewErrorCollector()
	fps, err := parser.ParseFPFile(path, collector)
	require.NoError(t, err)
	assert.Empty(t, fps)
	assert.False(t, collector.Empty())
}

func TestParseFPFileBadFieldCount(t *testing.T) {
	path := writeTemp(t, "fps.csv", "i95nyc;A;B\n")

	collector := shared.NewErrorCollector()
	fps, err := parser.ParseFPFile(path, collector)
	require.NoError(t, err)
	assert.Empty(t, fps)
	assert.False(t, collector.Empty())
}
