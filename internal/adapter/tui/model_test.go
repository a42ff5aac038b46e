package tui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"hello-ai-ui/internal/domain/entity"
	"hello-ai-ui/internal/usecase"
)

// stubRelay implements repository.Upstream for testing
type stubRelay struct {
	calls  int
	reply  string
	chunks []string
}

func (s *stubRelay) Chat(ctx context.Context, prompt string) (*entity.RelayResult, error) {
	s.calls++
	return &entity.RelayResult{Status: 200, Body: []byte(`{"reply":"` + s.reply + `"}`)}, nil
}

func (s *stubRelay) QA(ctx context.Context, query string) (*entity.RelayResult, error) {
	s.calls++
	body := `{"answer":"X is Y","context_used":[{"text":"snippet","distance":0.12,"keyword_score":0.5}]}`
	return &entity.RelayResult{Status: 200, Body: []byte(body)}, nil
}

func (s *stubRelay) ChatStream(ctx context.Context, prompt string) (*entity.StreamResult, error) {
	s.calls++
	return &entity.StreamResult{Status: 200, Body: io.NopCloser(strings.NewReader(strings.Join(s.chunks, "")))}, nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_TabSwitchesMode(t *testing.T) {
	session := usecase.NewSession(&stubRelay{})
	m := New(session)

	updated, _ := m.Update(key("tab"))
	m = updated.(Model)
	if session.Mode() != entity.ModeQA {
		t.Fatalf("expected qa mode, got %s", session.Mode())
	}
	if m.input.Placeholder != "Ask about your docs…" {
		t.Errorf("placeholder not updated: %q", m.input.Placeholder)
	}

	m.Update(key("tab"))
	if session.Mode() != entity.ModeChat {
		t.Errorf("expected chat mode, got %s", session.Mode())
	}
}

func TestModel_AskShowsReply(t *testing.T) {
	relay := &stubRelay{reply: "hello"}
	session := usecase.NewSession(relay)
	m := New(session)
	m.input.SetValue("hi")

	msg := m.ask()()
	if done, ok := msg.(askDoneMsg); !ok || done.err != nil {
		t.Fatalf("unexpected msg: %#v", msg)
	}
	if !strings.Contains(m.View(), "hello") {
		t.Errorf("view missing reply:\n%s", m.View())
	}
}

func TestModel_QAShowsSources(t *testing.T) {
	session := usecase.NewSession(&stubRelay{})
	session.SetMode(entity.ModeQA)
	m := New(session)
	m.input.SetValue("what is X")

	m.ask()()
	view := m.View()
	for _, want := range []string{"X is Y", "snippet", "distance 0.120", "keyword 0.500"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_StreamInQAModeWarns(t *testing.T) {
	relay := &stubRelay{}
	session := usecase.NewSession(relay)
	session.SetMode(entity.ModeQA)
	m := New(session)

	_, cmd := m.Update(key("ctrl+s"))
	if cmd != nil {
		t.Error("no command should be scheduled")
	}
	if relay.calls != 0 {
		t.Errorf("expected no relay call, got %d", relay.calls)
	}
	if !strings.Contains(m.View(), "Streaming is only supported for Chat mode") {
		t.Errorf("warning not shown:\n%s", m.View())
	}
}

func TestModel_StreamAccumulates(t *testing.T) {
	relay := &stubRelay{chunks: []string{"to", "ken", "s"}}
	session := usecase.NewSession(relay)
	m := New(session)
	m.input.SetValue("hi")

	updates := make(chan struct{}, 1)
	go func() {
		defer close(updates)
		session.AskStream(context.Background(), "hi", func(string) {
			select {
			case updates <- struct{}{}:
			default:
			}
		})
	}()

	wait := waitForUpdate(updates)
	for {
		msg := wait()
		if _, done := msg.(streamDoneMsg); done {
			break
		}
		_, next := m.Update(msg)
		wait = next
	}

	v := session.Snapshot()
	if v.State != usecase.StateDone || v.Answer != "tokens" {
		t.Errorf("unexpected view: %+v", v)
	}
}

func TestRenderResult_EmptyAnswer(t *testing.T) {
	out := RenderResult(usecase.View{}, 0)
	if !strings.Contains(out, "—") {
		t.Errorf("empty answer should render a dash: %q", out)
	}
}
