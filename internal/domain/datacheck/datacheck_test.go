package datacheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmapping/hwdata/internal/domain/datacheck"
)

func TestEntryStringForm(t *testing.T) {
	e := datacheck.New("i95nyc", "A", "B", "", datacheck.LongSegment, "21.34")
	assert.Equal(t, "i95nyc;A;B;;LONG_SEGMENT;21.34", e.String())
}

func TestLoadFPRejectsAlwaysErrorCodes(t *testing.T) {
	_, err := datacheck.LoadFP("i95nyc", "A", "", "", datacheck.DuplicateLabel, "")
	assert.Error(t, err)
}

func TestLoadFPAcceptsReconcilableCodes(t *testing.T) {
	fp, err := datacheck.LoadFP("i95nyc", "A", "B", "", datacheck.LongSegment, "21.34")
	require.NoError(t, err)
	assert.Equal(t, datacheck.LongSegment, fp.Code)
}

func TestReconcileExactMatchMarksFalsePositive(t *testing.T) {
	e := datacheck.New("i95nyc", "A", "B", "", datacheck.LongSegment, "21.34")
	fp, err := datacheck.LoadFP("i95nyc", "A", "B", "", datacheck.LongSegment, "21.34")
	require.NoError(t, err)

	result := datacheck.Reconcile([]*datacheck.Entry{e}, []*datacheck.FP{fp})

	assert.True(t, e.FalsePositive)
	assert.Empty(t, result.Changed)
}

func TestReconcileChangedInfoIsReportedNotHidden(t *testing.T) {
	e := datacheck.New("i95nyc", "A", "B", "", datacheck.LongSegment, "25.00")
	fp, err := datacheck.LoadFP("i95nyc", "A", "B", "", datacheck.LongSegment, "21.34")
	require.NoError(t, err)

	result := datacheck.Reconcile([]*datacheck.Entry{e}, []*datacheck.FP{fp})

	assert.False(t, e.FalsePositive)
	require.Len(t, result.Changed, 1)
	assert.Same(t, e, result.Changed[0])
}

func TestReconcileNoMatchLeavesEntryAlone(t *testing.T) {
	e := datacheck.New("i95nyc", "A", "B", "", datacheck.LongSegment, "21.34")
	fp, err := datacheck.LoadFP("i95nj", "A", "B", "", datacheck.LongSegment, "21.34")
	require.NoError(t, err)

	result := datacheck.Reconcile([]*datacheck.Entry{e}, []*datacheck.FP{fp})

	assert.False(t, e.FalsePositive)
	assert.Empty(t, result.Changed)
}

func TestIsAlwaysError(t *testing.T) {
	assert.True(t, datacheck.IsAlwaysError(datacheck.HiddenTerminus))
	assert.False(t, datacheck.IsAlwaysError(datacheck.LongSegment))
}
