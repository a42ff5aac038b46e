package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ChatReply is the backend's answer to a chat prompt.
type ChatReply struct {
	Reply string `json:"reply"`
}

// QAResult is the backend's answer to a document question.
type QAResult struct {
	Query       string          `json:"query"`
	Answer      string          `json:"answer"`
	ContextUsed []SourceSnippet `json:"context_used"`
	LatencyMs   int64           `json:"latency_ms"`
}

// SourceSnippet is a backend-supplied excerpt. Scores are passed through as-is.
type SourceSnippet struct {
	Text         string  `json:"text"`
	Distance     float64 `json:"distance"`
	KeywordScore float64 `json:"keyword_score"`
}

// UnmarshalJSON accepts both the object form and the positional row form
// ([text, distance] or [text, distance, keyword_score]) that some backends
// emit straight from their database driver.
func (s *SourceSnippet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		type plain SourceSnippet
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*s = SourceSnippet(p)
		return nil
	}

	var row []json.RawMessage
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	if len(row) == 0 {
		return fmt.Errorf("%w: empty source row", ErrMalformedResponse)
	}
	var out SourceSnippet
	if err := json.Unmarshal(row[0], &out.Text); err != nil {
		return fmt.Errorf("%w: source text: %v", ErrMalformedResponse, err)
	}
	if len(row) > 1 {
		if err := json.Unmarshal(row[1], &out.Distance); err != nil {
			return fmt.Errorf("%w: source distance: %v", ErrMalformedResponse, err)
		}
	}
	if len(row) > 2 && string(row[2]) != "null" {
		if err := json.Unmarshal(row[2], &out.KeywordScore); err != nil {
			return fmt.Errorf("%w: source keyword score: %v", ErrMalformedResponse, err)
		}
	}
	*s = out
	return nil
}

// ErrorBody is the structured error written by the relays.
type ErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// RelayResult is a fully read backend response.
type RelayResult struct {
	Status int
	Body   []byte
}

// StreamResult is an open backend response. The caller owns Body.
type StreamResult struct {
	Status int
	Body   io.ReadCloser
}
