package dashboard

import (
	"strings"
	"testing"

	"github.com/bnema/marvel-dashboard/internal/application"
	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func characterSnapshot() application.Snapshot {
	return application.Snapshot{
		ActiveTab: domain.CollectionCharacters,
		Characters: []domain.Character{
			{ID: 1009610, Name: "Spider-Man", Comics: domain.ResourceList{Available: 4000}, Series: domain.ResourceList{Available: 1100}},
			{ID: 1009609, Name: "Spider-Girl (May Parker)", Comics: domain.ResourceList{Available: 120}},
		},
		CharactersState: application.CollectionState{
			SearchTerm: "Spider",
			Cursor:     domain.Cursor{Offset: 20, Limit: 20, Total: 45},
		},
		SeriesState: application.CollectionState{Cursor: domain.NewCursor(20)},
	}
}

func TestRenderCharacters(t *testing.T) {
	t.Parallel()

	output, err := Render(characterSnapshot(), RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Marvel Dashboard")
	assert.Contains(t, output, "page 2 of 3 · 45 total · 20 per page")
	assert.Contains(t, output, "search: Spider")
	assert.Contains(t, output, "Spider-Man")
	assert.Contains(t, output, "4000 comics, 1100 series")
	assert.Contains(t, output, "["+strings.Repeat("=", barWidth)+"]")
	assert.NotContains(t, output, "Error fetching")
}

func TestRenderSeriesEmptyWithError(t *testing.T) {
	t.Parallel()

	snapshot := characterSnapshot()
	snapshot.SeriesState.Error = "Error fetching series"

	output, err := Render(snapshot, RenderOptions{Collection: domain.CollectionSeries})

	require.NoError(t, err)
	assert.Contains(t, output, "page 1 of 1 · 0 total")
	assert.Contains(t, output, "Error fetching series")
	assert.Contains(t, output, "No series found.")
	assert.NotContains(t, output, "Spider-Man")
}

func TestRenderSeriesYears(t *testing.T) {
	t.Parallel()

	snapshot := application.Snapshot{
		ActiveTab: domain.CollectionSeries,
		Series: []domain.Series{
			{ID: 1, Title: "Avengers (1963 - 1996)", StartYear: 1963, EndYear: 1996, Comics: domain.ResourceList{Available: 400}},
			{ID: 2, Title: "One-Shot", StartYear: 2011, EndYear: 2011},
			{ID: 3, Title: "Unknown"},
		},
		SeriesState: application.CollectionState{Cursor: domain.Cursor{Limit: 20, Total: 3}},
	}

	output, err := Render(snapshot, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "1963-1996")
	assert.Contains(t, output, "0 comics, 2011")
	assert.Contains(t, output, "years unknown")
}

func TestRenderBarScalesToLargestValue(t *testing.T) {
	t.Parallel()

	s := newStyles()

	assert.Equal(t, renderBar(0, 0, 4, s), renderBar(0, 10, 4, s))
	assert.Contains(t, renderBar(5, 10, 4, s), "==")
	assert.Contains(t, renderBar(5, 10, 4, s), "--")
	assert.Empty(t, renderBar(1, 1, 0, s))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Thor", truncate(" Thor ", 10))
	assert.Equal(t, "Capt…", truncate("Captain America", 5))
}
