package dashboard

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/bnema/marvel-dashboard/internal/application"
	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller is the part of the orchestrator the interactive dashboard drives.
type Controller interface {
	Start(ctx context.Context)
	Snapshot() application.Snapshot
	Changes() <-chan struct{}
	SetPage(ctx context.Context, collection domain.Collection, page int) error
	SetPageSize(ctx context.Context, collection domain.Collection, limit int) error
	SetSearchTerm(ctx context.Context, collection domain.Collection, term string) error
	SetActiveTab(ctx context.Context, collection domain.Collection) error
	Refresh(ctx context.Context, collection domain.Collection) error
}

var pageSizes = []int{10, 20, 50, 100}

const helpText = "tab switch · ←/→ page · s page size · / search · r reload · q quit"

type startedMsg struct{}

type changedMsg struct{}

type Model struct {
	ctx        context.Context
	controller Controller
	styles     styles
	spinner    spinner.Model
	search     textinput.Model
	searching  bool
	snapshot   application.Snapshot
	actionErr  error
	crashed    bool
	crash      string
}

func NewModel(ctx context.Context, controller Controller) Model {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	search := textinput.New()
	search.Prompt = "search: "
	search.Placeholder = "name starts with..."
	search.CharLimit = 64

	return Model{
		ctx:        ctx,
		controller: controller,
		styles:     newStyles(),
		spinner:    s,
		search:     search,
		snapshot:   controller.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start(), m.waitForChange())
}

func (m Model) start() tea.Cmd {
	return func() tea.Msg {
		m.controller.Start(m.ctx)
		return startedMsg{}
	}
}

func (m Model) waitForChange() tea.Cmd {
	changes := m.controller.Changes()
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case <-changes:
			return changedMsg{}
		}
	}
}

// Update recovers from panics raised while handling a message and switches
// the view to a reload prompt.
func (m Model) Update(msg tea.Msg) (next tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.crashed = true
			m.crash = fmt.Sprint(r)
			m.searching = false
			next, cmd = m, nil
		}
	}()

	return m.update(msg)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case startedMsg:
		m.snapshot = m.controller.Snapshot()
		return m, nil
	case changedMsg:
		m.snapshot = m.controller.Snapshot()
		return m, m.waitForChange()
	case tea.KeyMsg:
		if m.crashed {
			return m.updateCrashed(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	default:
		return m, nil
	}
}

func (m Model) updateCrashed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.crashed = false
		m.crash = ""
		m.actionErr = m.controller.Refresh(m.ctx, m.snapshot.ActiveTab)
		m.snapshot = m.controller.Snapshot()
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		m.actionErr = m.controller.SetSearchTerm(m.ctx, m.snapshot.ActiveTab, m.search.Value())
		m.snapshot = m.controller.Snapshot()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := m.snapshot.ActiveTab
	cursor := m.snapshot.State(active).Cursor

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.actionErr = m.controller.SetActiveTab(m.ctx, otherTab(active))
	case "right", "n":
		if !cursor.HasNext() {
			return m, nil
		}
		m.actionErr = m.controller.SetPage(m.ctx, active, cursor.Page()+1)
	case "left", "p":
		if !cursor.HasPrev() {
			return m, nil
		}
		m.actionErr = m.controller.SetPage(m.ctx, active, cursor.Page()-1)
	case "s":
		m.actionErr = m.controller.SetPageSize(m.ctx, active, nextPageSize(cursor.Limit))
	case "r":
		m.actionErr = m.controller.Refresh(m.ctx, active)
	case "/":
		m.searching = true
		m.search.SetValue(m.snapshot.State(active).SearchTerm)
		m.search.CursorEnd()
		return m, m.search.Focus()
	default:
		return m, nil
	}

	m.snapshot = m.controller.Snapshot()
	return m, nil
}

func (m Model) View() string {
	if m.crashed {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.styles.warning.Render("Something went wrong: "+m.crash),
			m.styles.help.Render("press r to reload, q to quit"),
		)
	}

	parts := []string{
		renderView(m.snapshot, m.snapshot.ActiveTab, m.spinner.View()+" loading...", m.styles),
	}
	if m.searching {
		parts = append(parts, m.styles.section.Render(m.search.View()))
	}
	if m.actionErr != nil {
		parts = append(parts, m.styles.warning.Render(m.actionErr.Error()))
	}
	parts = append(parts, m.styles.section.Render(m.styles.help.Render(helpText)))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func otherTab(active domain.Collection) domain.Collection {
	if active == domain.CollectionSeries {
		return domain.CollectionCharacters
	}
	return domain.CollectionSeries
}

func nextPageSize(current int) int {
	if i := slices.Index(pageSizes, current); i >= 0 {
		return pageSizes[(i+1)%len(pageSizes)]
	}
	return pageSizes[0]
}

type RunOptions struct {
	Input  io.Reader
	Output io.Writer
}

// Run starts the interactive dashboard and blocks until the user quits or
// ctx is canceled.
func Run(ctx context.Context, controller Controller, opts RunOptions) error {
	programOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	_, err := tea.NewProgram(NewModel(ctx, controller), programOpts...).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
