package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/marvel-dashboard/internal/application"
	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth   = 24
	labelWidth = 32
)

type RenderOptions struct {
	// Collection selects the listing to render. Empty renders the snapshot's
	// active tab.
	Collection domain.Collection
}

type row struct {
	id     int
	label  string
	detail string
	comics int
}

func renderView(snapshot application.Snapshot, collection domain.Collection, loading string, s styles) string {
	if collection == "" {
		collection = snapshot.ActiveTab
	}
	state := snapshot.State(collection)

	lines := []string{
		s.title.Render("Marvel Dashboard"),
		renderTabs(collection, s),
		s.header.Render(cursorLine(state)),
	}

	if state.SearchTerm != "" {
		lines = append(lines, s.detail.Render(fmt.Sprintf("search: %s", state.SearchTerm)))
	}
	if state.Loading && loading != "" {
		lines = append(lines, loading)
	}
	if state.Error != "" {
		lines = append(lines, s.warning.Render(state.Error))
	}

	rows := rowsFor(snapshot, collection)
	if len(rows) == 0 {
		lines = append(lines, s.section.Render(s.empty.Render(fmt.Sprintf("No %s found.", collection))))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.section.Render(renderTable(rows, s)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTabs(active domain.Collection, s styles) string {
	tabs := make([]string, 0, 2)
	for _, collection := range []domain.Collection{domain.CollectionCharacters, domain.CollectionSeries} {
		style := s.tabInactive
		if collection == active {
			style = s.tabActive
		}
		tabs = append(tabs, style.Render(collection.Label()))
	}
	return strings.Join(tabs, "  ")
}

func cursorLine(state application.CollectionState) string {
	cursor := state.Cursor
	pages := cursor.PageCount()
	if pages == 0 {
		pages = 1
	}
	return fmt.Sprintf("page %d of %d · %d total · %d per page", cursor.Page(), pages, cursor.Total, cursor.Limit)
}

func rowsFor(snapshot application.Snapshot, collection domain.Collection) []row {
	switch collection {
	case domain.CollectionSeries:
		rows := make([]row, 0, len(snapshot.Series))
		for _, series := range snapshot.Series {
			rows = append(rows, row{
				id:     series.ID,
				label:  series.Title,
				detail: seriesYears(series),
				comics: series.Comics.Available,
			})
		}
		return rows
	default:
		rows := make([]row, 0, len(snapshot.Characters))
		for _, character := range snapshot.Characters {
			rows = append(rows, row{
				id:     character.ID,
				label:  character.Name,
				detail: fmt.Sprintf("%d series", character.Series.Available),
				comics: character.Comics.Available,
			})
		}
		return rows
	}
}

func seriesYears(series domain.Series) string {
	switch {
	case series.StartYear == 0:
		return "years unknown"
	case series.EndYear == 0 || series.EndYear == series.StartYear:
		return fmt.Sprintf("%d", series.StartYear)
	default:
		return fmt.Sprintf("%d-%d", series.StartYear, series.EndYear)
	}
}

func renderTable(rows []row, s styles) string {
	most := 0
	for _, r := range rows {
		if r.comics > most {
			most = r.comics
		}
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.rowID.Render(fmt.Sprintf("%8d ", r.id)),
			s.rowLabel.Render(padRight(truncate(r.label, labelWidth), labelWidth)),
			" ",
			renderBar(r.comics, most, barWidth, s),
			" ",
			s.detail.Render(fmt.Sprintf("%d comics, %s", r.comics, r.detail)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderBar draws value relative to the largest value on the page.
func renderBar(value, largest, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := 0
	if largest > 0 {
		filled = int(math.Round(float64(width) * float64(value) / float64(largest)))
	}
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func truncate(value string, width int) string {
	runes := []rune(strings.TrimSpace(value))
	if len(runes) <= width {
		return string(runes)
	}
	return string(runes[:width-1]) + "…"
}

func padRight(value string, width int) string {
	if pad := width - lipgloss.Width(value); pad > 0 {
		return value + strings.Repeat(" ", pad)
	}
	return value
}
