package logs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dataStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	emptyStyle = lipgloss.NewStyle().Faint(true)

	levelStyles = map[domain.LogLevel]lipgloss.Style{
		domain.LogLevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		domain.LogLevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		domain.LogLevelError: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
)

type RenderOptions struct {
	// Limit keeps only the newest entries. Zero renders everything.
	Limit int
}

// Render lists entries newest first.
func Render(entries []domain.LogEntry, opts RenderOptions) string {
	lines := []string{titleStyle.Render(fmt.Sprintf("Application logs (%d)", len(entries)))}
	if len(entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, emptyStyle.Render("No log entries."))...)
	}

	shown := entries
	if opts.Limit > 0 && len(shown) > opts.Limit {
		shown = shown[len(shown)-opts.Limit:]
	}

	for i := len(shown) - 1; i >= 0; i-- {
		lines = append(lines, renderEntry(shown[i]))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderEntry(entry domain.LogEntry) string {
	style, ok := levelStyles[entry.Level]
	if !ok {
		style = dataStyle
	}

	parts := []string{
		timeStyle.Render(entry.Timestamp.Local().Format(time.DateTime)),
		" ",
		style.Render(fmt.Sprintf("%-5s", entry.Level)),
		" ",
		entry.Message,
	}
	if len(entry.Data) > 0 {
		if data, err := json.Marshal(entry.Data); err == nil {
			parts = append(parts, " ", dataStyle.Render(string(data)))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
