package dashboard

import (
	"errors"
	"io"

	"github.com/bnema/marvel-dashboard/internal/application"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

// staticModel renders one snapshot and quits. One-shot listing commands use
// it so static and interactive output share a renderer.
type staticModel struct {
	snapshot application.Snapshot
	opts     RenderOptions
	styles   styles
	output   string
}

func newStaticModel(snapshot application.Snapshot, opts RenderOptions) staticModel {
	return staticModel{
		snapshot: snapshot,
		opts:     opts,
		styles:   newStyles(),
	}
}

func (m staticModel) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m staticModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.snapshot, m.opts.Collection, "", m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m staticModel) View() string {
	return m.output
}

// Render draws one snapshot of collection as plain text. It goes through a
// headless bubbletea program so lipgloss resolves the same color profile the
// interactive dashboard uses, and the listing commands print exactly what a
// dashboard tab would show.
func Render(snapshot application.Snapshot, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newStaticModel(snapshot, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(staticModel)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
