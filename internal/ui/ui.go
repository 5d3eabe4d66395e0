package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/koki-develop/img2ascii/internal/job"
)

// Runner is the work shown by the UI.
type Runner interface {
	Source() string
	Run(ctx context.Context) (*job.Summary, error)
}

type Option struct {
	Runner  Runner
	Options []tea.ProgramOption
}

// ErrAborted is returned when the user quits before the job finishes.
var ErrAborted = errors.New("aborted")

func Start(opt *Option) (*job.Summary, error) {
	m := newModel(opt)
	p := tea.NewProgram(m, opt.Options...)
	if _, err := p.Run(); err != nil {
		return nil, err
	}

	if m.err != nil {
		return nil, m.err
	}

	return m.summary, nil
}

var _ tea.Model = &model{}

type model struct {
	err     error
	summary *job.Summary

	runner Runner
	ctx    context.Context
	cancel context.CancelFunc

	state   modelState
	spinner spinner.Model
}

var (
	sourceStyle  = lipgloss.NewStyle().Bold(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

func newModel(opt *Option) *model {
	ctx, cancel := context.WithCancel(context.Background())
	return &model{
		runner: opt.Runner,
		ctx:    ctx,
		cancel: cancel,

		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
	}
}

func (m *model) Init() tea.Cmd {
	m.state = modelStateConverting
	return tea.Batch(m.spinner.Tick, m.convert())
}

func (m *model) View() string {
	switch m.state {
	case modelStateConverting:
		return m.convertingView()
	case modelStateDone:
		return m.doneView()
	}

	return ""
}

func (m *model) convertingView() string {
	return fmt.Sprintf("%s converting %s...\n", m.spinner.View(), sourceStyle.Render(m.runner.Source()))
}

func (m *model) doneView() string {
	b := new(strings.Builder)
	if m.summary.WriteErr != nil {
		b.WriteString(color.New(color.FgYellow).Sprint("! "))
	} else {
		b.WriteString(color.New(color.FgGreen).Sprint("✔ "))
	}
	b.WriteString(m.summary.String())
	b.WriteString("\n")
	return b.String()
}

type modelState string

const (
	modelStateConverting modelState = "converting"
	modelStateDone       modelState = "done"
	// the caller reports the error, so a failed model renders nothing
	modelStateFailed modelState = "failed"
)

type errMsg struct{ error }
type doneMsg struct{ summary *job.Summary }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.state == modelStateConverting {
				m.err = ErrAborted
				m.state = modelStateFailed
			}
			return m, m.quit()
		}

	case errMsg:
		if m.state != modelStateConverting {
			return m, nil
		}
		m.err = msg.error
		m.state = modelStateFailed
		return m, m.quit()

	case doneMsg:
		if m.state != modelStateConverting {
			return m, nil
		}
		m.summary = msg.summary
		m.state = modelStateDone
		return m, m.quit()

	case spinner.TickMsg:
		if m.state != modelStateConverting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) quit() tea.Cmd {
	m.cancel()
	return tea.Quit
}

func (m *model) convert() tea.Cmd {
	return func() tea.Msg {
		s, err := m.runner.Run(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return doneMsg{s}
	}
}
