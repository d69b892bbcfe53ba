package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var errPromptCanceled = errors.New("prompt canceled")

type passwordModel struct {
	input    textinput.Model
	done     bool
	canceled bool
}

func newPasswordModel() passwordModel {
	input := textinput.New()
	input.Prompt = "Password: "
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.Focus()

	return passwordModel{input: input}
}

func (m passwordModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m passwordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m passwordModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	return m.input.View()
}

// promptPassword reads a password from input without echoing it.
func promptPassword(ctx context.Context, input io.Reader, output io.Writer) (string, error) {
	p := tea.NewProgram(
		newPasswordModel(),
		tea.WithInput(input),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	result, ok := finalModel.(passwordModel)
	if !ok {
		return "", fmt.Errorf("unexpected final prompt model type %T", finalModel)
	}
	if result.canceled {
		return "", errPromptCanceled
	}

	return result.input.Value(), nil
}
