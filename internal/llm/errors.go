package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrorKind classifies a provider failure for the retry layer.
type ErrorKind int

const (
	// KindUnavailable covers 5xx responses and transport failures.
	KindUnavailable ErrorKind = iota

	// KindRateLimited covers 429 responses.
	KindRateLimited

	// KindBadPayload covers output that is not the JSON the schema
	// demands, including truncated documents.
	KindBadPayload
)

// Error is the single failure type providers return.
type Error struct {
	Kind ErrorKind

	// RetryAfter is the provider-suggested wait for KindRateLimited,
	// zero when the provider gave none.
	RetryAfter time.Duration

	// Content carries the offending output for KindBadPayload so
	// callers can log what the model actually said.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindRateLimited:
		return fmt.Sprintf("llm rate limited: %v", e.Err)
	case KindBadPayload:
		return fmt.Sprintf("llm output unusable: %v", e.Err)
	default:
		return fmt.Sprintf("llm provider unavailable: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func unavailable(err error) *Error {
	return &Error{Kind: KindUnavailable, Err: err}
}

func rateLimited(err error) *Error {
	return &Error{Kind: KindRateLimited, Err: err}
}

func badPayload(content json.RawMessage, err error) *Error {
	return &Error{Kind: KindBadPayload, Content: content, Err: err}
}
