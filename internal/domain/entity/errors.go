package entity

import "errors"

// Standard domain errors
var (
	ErrMissingQuery       = errors.New("Missing query param `query`")
	ErrBackendUnreachable = errors.New("Failed to reach backend")
	ErrMalformedResponse  = errors.New("malformed backend response")
	ErrStreamRequiresChat = errors.New("Streaming is only supported for Chat mode right now.")
	ErrMissingBackendURL  = errors.New("BACKEND_URL is not configured")
	ErrUnknownMode        = errors.New("unknown mode")
	ErrStatsDisabled      = errors.New("usage stats are not enabled")
)

// RelayError is a structured error body returned by a relay with a failing status.
type RelayError struct {
	Status  int
	Message string
	Detail  string
}

func (e *RelayError) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

// UpstreamError reports that an outbound call never produced a response.
type UpstreamError struct {
	URL string
	Err error
}

func (e *UpstreamError) Error() string { return "GET " + e.URL + ": " + e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrBackendUnreachable }
