package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAggregateEmptyInput(t *testing.T) {
	snap := Aggregate(nil)
	assert.Equal(t, Snapshot{}, snap)

	snap = Aggregate([]FieldReport{})
	assert.Equal(t, 0, snap.TotalReports)
	assert.Equal(t, 0, snap.TotalAvalanches)
	assert.Equal(t, 0, snap.CrackingCounts.Sum())
}

func TestAggregateEndToEnd(t *testing.T) {
	reports := []FieldReport{
		{
			ID: 1,
			AvalancheObservations: []AvalancheObservation{
				{Elevation: strPtr(">TL"), Aspect: strPtr("N")},
			},
			SnowpackObservations: []SnowpackObservation{},
		},
		{
			ID:                         2,
			AvalancheObservationsCount: 2,
			SnowpackObservations: []SnowpackObservation{
				{Cracking: strPtr("minor"), Collapsing: strPtr("none")},
			},
		},
	}

	snap := Aggregate(reports)

	assert.Equal(t, 2, snap.TotalReports)
	assert.Equal(t, 2, snap.ReportsWithAvalanches)
	assert.Equal(t, 3, snap.TotalAvalanches)
	assert.Equal(t, 1, snap.AvalanchesByElevation.AboveTreeline)
	assert.Equal(t, 1, snap.AvalanchesByAspect.N)

	// Report 1 has no snowpack observations and contributes the implicit
	// report-level none; report 2's observation classifies explicitly.
	assert.Equal(t, 1, snap.CrackingCounts.None)
	assert.Equal(t, 1, snap.CrackingCounts.Minor)
	assert.Equal(t, 2, snap.CollapsingCounts.None)
}

func TestAggregateDropsUnclassifiedObservations(t *testing.T) {
	reports := []FieldReport{
		{
			ID: 10,
			AvalancheObservations: []AvalancheObservation{
				{Elevation: strPtr("ATL"), Aspect: strPtr("NE")},
				{Elevation: strPtr("no idea"), Aspect: strPtr("northeast facing")},
				{Elevation: nil, Aspect: nil},
			},
		},
	}

	snap := Aggregate(reports)

	assert.Equal(t, 3, snap.TotalAvalanches)
	assert.Equal(t, 1, snap.AvalanchesByElevation.Sum())
	assert.Equal(t, 1, snap.AvalanchesByAspect.Sum())
	assert.LessOrEqual(t, snap.AvalanchesByElevation.Sum(), snap.TotalAvalanches)
	assert.LessOrEqual(t, snap.AvalanchesByAspect.Sum(), snap.TotalAvalanches)
}

func TestAggregateCountFallback(t *testing.T) {
	t.Run("itemized observations win", func(t *testing.T) {
		snap := Aggregate([]FieldReport{{
			ID:                         1,
			AvalancheObservations:      []AvalancheObservation{{}, {}},
			AvalancheObservationsCount: 7,
		}})
		assert.Equal(t, 2, snap.TotalAvalanches)
	})

	t.Run("count used when no itemized observations", func(t *testing.T) {
		snap := Aggregate([]FieldReport{{ID: 1, AvalancheObservationsCount: 4}})
		assert.Equal(t, 4, snap.TotalAvalanches)
		assert.Equal(t, 1, snap.ReportsWithAvalanches)
	})

	t.Run("no avalanches", func(t *testing.T) {
		snap := Aggregate([]FieldReport{{ID: 1}})
		assert.Equal(t, 0, snap.TotalAvalanches)
		assert.Equal(t, 0, snap.ReportsWithAvalanches)
	})
}

func TestAggregateReportsWithAvalanchesCountsOncePerReport(t *testing.T) {
	snap := Aggregate([]FieldReport{{
		ID: 1,
		AvalancheObservations: []AvalancheObservation{
			{Aspect: strPtr("N")}, {Aspect: strPtr("S")}, {Aspect: strPtr("W")},
		},
	}})
	assert.Equal(t, 1, snap.ReportsWithAvalanches)
	assert.Equal(t, 3, snap.TotalAvalanches)
}

func TestAggregateInstabilityUnitInvariant(t *testing.T) {
	// Each snowpack observation contributes exactly one cracking and one
	// collapsing classification; empty reports contribute exactly one none.
	reports := []FieldReport{
		{ID: 1},
		{ID: 2, SnowpackObservations: []SnowpackObservation{
			{Cracking: strPtr("widespread"), Collapsing: strPtr("moderate")},
			{Cracking: nil, Collapsing: strPtr("heavy")},
		}},
		{ID: 3, SnowpackObservations: []SnowpackObservation{
			{Cracking: strPtr("garbage text"), Collapsing: strPtr("")},
		}},
	}

	snap := Aggregate(reports)

	require.Equal(t, 4, snap.CrackingCounts.Sum())
	require.Equal(t, 4, snap.CollapsingCounts.Sum())
	assert.Equal(t, 1, snap.CrackingCounts.Severe)
	assert.Equal(t, 1, snap.CollapsingCounts.Moderate)
	assert.Equal(t, 1, snap.CollapsingCounts.Major)
	assert.Equal(t, 2, snap.CrackingCounts.None)
	assert.Equal(t, 2, snap.CollapsingCounts.None)
}

func TestAggregateIdempotent(t *testing.T) {
	reports := []FieldReport{
		{ID: 1, AvalancheObservations: []AvalancheObservation{{Elevation: strPtr("BTL"), Aspect: strPtr("SW")}}},
		{ID: 2, AvalancheObservationsCount: 5},
		{ID: 3, SnowpackObservations: []SnowpackObservation{{Cracking: strPtr("minor")}}},
	}

	first := Aggregate(reports)
	second := Aggregate(reports)
	assert.Equal(t, first, second)
}
