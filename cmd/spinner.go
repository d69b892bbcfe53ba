package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/marvel-dashboard/internal/application"
	"github.com/bnema/marvel-dashboard/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// progress is one status line of a running operation. The spinner stops on
// the first update with done set.
type progress struct {
	label string
	done  bool
	err   error
}

type progressMsg progress

type spinnerModel struct {
	spinner spinner.Model
	updates <-chan progress
	current progress
}

func newSpinnerModel(updates <-chan progress) spinnerModel {
	return spinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("196"))),
		),
		updates: updates,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.nextUpdate())
}

func (m spinnerModel) nextUpdate() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return progressMsg{done: true}
		}
		return progressMsg(update)
	}
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progressMsg:
		if msg.label == "" {
			msg.label = m.current.label
		}
		m.current = progress(msg)
		if m.current.done {
			return m, tea.Quit
		}
		return m, m.nextUpdate()
	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	if m.current.done || m.current.label == "" {
		return ""
	}
	return m.spinner.View() + " " + m.current.label
}

// showProgress animates the updates on output until one reports done and
// returns that update's error.
func showProgress(ctx context.Context, output io.Writer, updates <-chan progress) error {
	p := tea.NewProgram(
		newSpinnerModel(updates),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(spinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}
	return result.current.err
}

// awaitProgress drains updates without drawing anything.
func awaitProgress(updates <-chan progress) error {
	for update := range updates {
		if update.done {
			return update.err
		}
	}
	return nil
}

// runWithSpinner shows a fixed label while work runs.
func runWithSpinner(ctx context.Context, output io.Writer, label string, work func(context.Context) error) error {
	updates := make(chan progress, 2)
	updates <- progress{label: label}

	go func() {
		defer close(updates)
		updates <- progress{done: true, err: work(ctx)}
	}()

	return showProgress(ctx, output, updates)
}

// collectionFetcher is the part of the orchestrator a one-shot listing needs.
type collectionFetcher interface {
	Refresh(ctx context.Context, collection domain.Collection) error
	Snapshot() application.Snapshot
	Changes() <-chan struct{}
}

// watchFetch refreshes collection and reports its loading state until the
// fetch settles. Fetch failures stay in the collection state; only a refused
// refresh or a canceled context is returned as an error.
func watchFetch(ctx context.Context, fetcher collectionFetcher, collection domain.Collection) <-chan progress {
	updates := make(chan progress, 1)

	go func() {
		defer close(updates)

		if err := fetcher.Refresh(ctx, collection); err != nil {
			updates <- progress{done: true, err: err}
			return
		}

		for {
			state := fetcher.Snapshot().State(collection)
			update := progress{label: fetchLabel(collection, state), done: !state.Loading}

			select {
			case updates <- update:
			case <-ctx.Done():
				return
			}
			if update.done {
				return
			}

			select {
			case <-fetcher.Changes():
			case <-ctx.Done():
				select {
				case updates <- progress{done: true, err: ctx.Err()}:
				default:
				}
				return
			}
		}
	}()

	return updates
}

func fetchLabel(collection domain.Collection, state application.CollectionState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fetching %s", collection)
	if state.SearchTerm != "" {
		fmt.Fprintf(&b, " starting with %q", state.SearchTerm)
	}
	fmt.Fprintf(&b, " (page %d", state.Cursor.Page())
	if pages := state.Cursor.PageCount(); pages > 0 {
		fmt.Fprintf(&b, " of %d", pages)
	}
	b.WriteString(")...")
	return b.String()
}
