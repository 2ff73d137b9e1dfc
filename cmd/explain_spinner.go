package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type explainDoneMsg struct {
	err error
}

type explainSpinnerModel struct {
	spinner spinner.Model
	label   string
	explain tea.Cmd
	err     error
	done    bool
}

func newExplainSpinnerModel(label string, explain tea.Cmd) explainSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return explainSpinnerModel{
		spinner: s,
		label:   label,
		explain: explain,
	}
}

func (m explainSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.explain)
}

func (m explainSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case explainDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m explainSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runExplainSpinner(ctx context.Context, output io.Writer, explain func(context.Context) error) error {
	explainCmd := func() tea.Msg {
		return explainDoneMsg{err: explain(ctx)}
	}

	p := tea.NewProgram(
		newExplainSpinnerModel("Waiting for the AI critical solution extract...", explainCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(explainSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
