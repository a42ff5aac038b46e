// Package tui is the terminal front-end. It renders a usecase.Session and
// turns key presses into asks.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"hello-ai-ui/internal/domain/entity"
	"hello-ai-ui/internal/usecase"
)

// Model is the bubbletea model. Display state lives in the Session; the
// model only owns input widgets.
type Model struct {
	session *usecase.Session
	input   textarea.Model
	spinner spinner.Model
	width   int
}

// askDoneMsg signals a single-shot ask returned
type askDoneMsg struct{ err error }

// streamUpdateMsg signals new streamed text is in the session
type streamUpdateMsg struct{ updates <-chan struct{} }

// streamDoneMsg signals the stream loop ended
type streamDoneMsg struct{}

func New(session *usecase.Session) Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(4)
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{session: session, input: ta, spinner: s}
	m.input.Placeholder = placeholder(session.Mode())
	return m
}

func placeholder(mode entity.Mode) string {
	if mode == entity.ModeQA {
		return "Ask about your docs…"
	}
	return "Ask anything…"
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(msg.Width - 2)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			next := entity.ModeQA
			if m.session.Mode() == entity.ModeQA {
				next = entity.ModeChat
			}
			m.session.SetMode(next)
			m.input.Placeholder = placeholder(next)
			return m, nil
		case "enter":
			return m, tea.Batch(m.spinner.Tick, m.ask())
		case "ctrl+s":
			return m, m.stream()
		}

	case spinner.TickMsg:
		if !m.session.Snapshot().State.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case askDoneMsg, streamDoneMsg:
		return m, nil

	case streamUpdateMsg:
		// Continue reading updates
		return m, waitForUpdate(msg.updates)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) ask() tea.Cmd {
	text := m.input.Value()
	session := m.session
	return func() tea.Msg {
		return askDoneMsg{err: session.Ask(context.Background(), text)}
	}
}

// stream starts the chat stream in the background. Outside chat mode the
// session refuses synchronously and there is nothing to wait for.
func (m Model) stream() tea.Cmd {
	text := m.input.Value()
	if m.session.Mode() != entity.ModeChat {
		m.session.AskStream(context.Background(), text, nil)
		return nil
	}

	updates := make(chan struct{}, 1)
	session := m.session
	go func() {
		defer close(updates)
		session.AskStream(context.Background(), text, func(string) {
			select {
			case updates <- struct{}{}:
			default:
			}
		})
	}()
	return tea.Batch(m.spinner.Tick, waitForUpdate(updates))
}

// waitForUpdate blocks until the stream goroutine reports progress
func waitForUpdate(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return streamDoneMsg{}
		}
		return streamUpdateMsg{updates: updates}
	}
}

func (m Model) View() string {
	v := m.session.Snapshot()

	status := mutedStyle.Render(v.State.String())
	if v.State.Busy() {
		status = m.spinner.View() + " " + status
	}

	return titleStyle.Render("🤖 Hello AI") + "\n" +
		renderTabs(v.Mode) + "  " + status + "\n\n" +
		m.input.View() + "\n" +
		mutedStyle.Render("enter: ask · ctrl+s: stream chat · tab: switch mode · esc: quit") + "\n\n" +
		RenderResult(v, m.width) + "\n"
}

// Run starts the interactive program and blocks until the user quits.
func Run(session *usecase.Session) error {
	p := tea.NewProgram(New(session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
