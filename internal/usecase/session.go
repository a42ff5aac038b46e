package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"hello-ai-ui/internal/domain/entity"
	"hello-ai-ui/internal/domain/repository"
)

// State is where a Session sits in its request/response cycle.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StateStreaming
	StateDone
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateStreaming:
		return "streaming"
	case StateDone:
		return "done"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Busy reports whether a request is in flight.
func (s State) Busy() bool { return s == StateRequesting || s == StateStreaming }

// View is a point-in-time copy of what a front-end should display.
type View struct {
	State   State
	Mode    entity.Mode
	Answer  string
	Sources []entity.SourceSnippet
	Err     string
}

// Session is the presentation layer's interaction state. Starting a new ask
// while one is in flight cancels the old one; results that arrive for a
// superseded request are dropped.
type Session struct {
	relay repository.Upstream

	mu     sync.Mutex
	view   View
	buf    strings.Builder
	seq    uint64
	cancel context.CancelFunc
}

func NewSession(relay repository.Upstream) *Session {
	return &Session{
		relay: relay,
		view:  View{State: StateIdle, Mode: entity.ModeChat},
	}
}

// SetMode changes the target of the next ask. In-flight requests continue.
func (s *Session) SetMode(m entity.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Mode = m
}

func (s *Session) Mode() entity.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Mode
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() View {
	v := s.view
	if s.view.Sources != nil {
		v.Sources = append([]entity.SourceSnippet(nil), s.view.Sources...)
	}
	return v
}

// Ask sends text to the chat or QA relay depending on the current mode.
func (s *Session) Ask(ctx context.Context, text string) error {
	ctx, seq, mode, err := s.begin(ctx, StateRequesting)
	if err != nil {
		return err
	}
	defer s.finish(seq)

	var res *entity.RelayResult
	if mode == entity.ModeQA {
		res, err = s.relay.QA(ctx, text)
	} else {
		res, err = s.relay.Chat(ctx, text)
	}
	if err != nil {
		s.fail(seq, err)
		return err
	}

	answer, sources, err := decodeAnswer(mode, res)
	if err != nil {
		s.fail(seq, err)
		return err
	}
	s.update(seq, func(v *View) {
		v.State = StateDone
		v.Answer = answer
		v.Sources = sources
	})
	return nil
}

// AskStream streams a chat answer, appending each decoded chunk to the
// answer buffer and calling onChunk with it. Only chat mode can stream;
// in any other mode no request is made.
func (s *Session) AskStream(ctx context.Context, text string, onChunk func(chunk string)) error {
	ctx, seq, _, err := s.begin(ctx, StateStreaming)
	if err != nil {
		return err
	}
	defer s.finish(seq)

	res, err := s.relay.ChatStream(ctx, text)
	if err != nil {
		s.fail(seq, err)
		return err
	}
	defer res.Body.Close()

	// Holds back partial UTF-8 sequences until the rest of the rune arrives.
	r := transform.NewReader(res.Body, unicode.UTF8.NewDecoder())
	chunk := make([]byte, 4096)
	for {
		n, rerr := r.Read(chunk)
		if n > 0 {
			piece := string(chunk[:n])
			if !s.update(seq, func(v *View) {
				s.buf.WriteString(piece)
				v.Answer = s.buf.String()
			}) {
				return context.Canceled
			}
			if onChunk != nil {
				onChunk(piece)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			s.fail(seq, rerr)
			return rerr
		}
	}

	s.update(seq, func(v *View) { v.State = StateDone })
	return nil
}

// begin cancels any request in flight and resets the answer. A stream
// requested outside chat mode ends here in the error state.
func (s *Session) begin(ctx context.Context, next State) (context.Context, uint64, entity.Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	s.buf.Reset()
	s.view.Answer = ""
	s.view.Sources = nil
	s.view.Err = ""

	if next == StateStreaming && s.view.Mode != entity.ModeChat {
		s.view.State = StateError
		s.view.Err = entity.ErrStreamRequiresChat.Error()
		return nil, s.seq, s.view.Mode, entity.ErrStreamRequiresChat
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.view.State = next
	return ctx, s.seq, s.view.Mode, nil
}

func (s *Session) finish(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == s.seq && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// update applies fn if seq is still the current request.
func (s *Session) update(seq uint64, fn func(v *View)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return false
	}
	fn(&s.view)
	return true
}

func (s *Session) fail(seq uint64, err error) {
	s.update(seq, func(v *View) {
		v.State = StateError
		v.Err = err.Error()
	})
}

// decodeAnswer turns a relay body into display text. A failing status with
// an error body becomes a RelayError; a body without the expected field is
// shown as indented JSON. A field of the wrong type is a malformed response.
func decodeAnswer(mode entity.Mode, res *entity.RelayResult) (string, []entity.SourceSnippet, error) {
	if !json.Valid(res.Body) {
		return "", nil, fmt.Errorf("%w: status %d: %q", entity.ErrMalformedResponse, res.Status, truncate(res.Body, 120))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(res.Body, &fields); err != nil {
		return indent(res.Body), nil, nil
	}

	if res.Status >= 400 {
		if raw, ok := fields["error"]; ok {
			return "", nil, &entity.RelayError{
				Status:  res.Status,
				Message: rawText(raw),
				Detail:  rawText(fields["detail"]),
			}
		}
	}

	if raw, ok := fields[answerField(mode)]; !ok || isNull(raw) {
		return indent(res.Body), nil, nil
	}

	if mode != entity.ModeQA {
		var reply entity.ChatReply
		if err := json.Unmarshal(res.Body, &reply); err != nil {
			return "", nil, fmt.Errorf("%w: reply: %v", entity.ErrMalformedResponse, err)
		}
		return reply.Reply, nil, nil
	}

	var qa entity.QAResult
	if err := json.Unmarshal(res.Body, &qa); err != nil {
		if errors.Is(err, entity.ErrMalformedResponse) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("%w: qa result: %v", entity.ErrMalformedResponse, err)
	}
	return qa.Answer, qa.ContextUsed, nil
}

func answerField(mode entity.Mode) string {
	if mode == entity.ModeQA {
		return "answer"
	}
	return "reply"
}

// rawText renders a JSON value as text: strings unquoted, anything else as-is.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func isNull(raw json.RawMessage) bool { return string(bytes.TrimSpace(raw)) == "null" }

func indent(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
