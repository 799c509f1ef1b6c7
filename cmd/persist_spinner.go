package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/qa-inspector/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type uploadProgressMsg struct {
	done  int
	total int
}

type persistFinishedMsg struct{}

// persistView shows a spinner next to the running step: evidence upload
// counts while files are in flight, label otherwise.
type persistView struct {
	spinner  spinner.Model
	label    string
	uploaded int
	total    int
	finished bool
}

func newPersistView(label string) persistView {
	return persistView{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		label: label,
	}
}

func (m persistView) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m persistView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadProgressMsg:
		m.uploaded, m.total = msg.done, msg.total
		return m, nil
	case persistFinishedMsg:
		m.finished = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m persistView) View() string {
	if m.finished {
		return ""
	}
	return m.spinner.View() + " " + m.status()
}

func (m persistView) status() string {
	if m.total > 0 && m.uploaded < m.total {
		return fmt.Sprintf("Uploading evidence %d/%d...", m.uploaded, m.total)
	}
	return m.label
}

// runPersistSpinner runs persist in the background and renders its upload
// progress on output. persist always runs to completion, even when the
// program stops early.
func runPersistSpinner(ctx context.Context, output io.Writer, label string, persist func(context.Context, application.UploadProgress) error) error {
	p := tea.NewProgram(newPersistView(label),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	result := make(chan error, 1)
	go func() {
		err := persist(ctx, func(done, total int) {
			p.Send(uploadProgressMsg{done: done, total: total})
		})
		result <- err
		p.Send(persistFinishedMsg{})
	}()

	_, runErr := p.Run()
	persistErr := <-result
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return errors.Join(persistErr, fmt.Errorf("render progress: %w", runErr))
	}
	return persistErr
}
