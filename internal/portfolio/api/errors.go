package api

import (
	"errors"
	"fmt"
)

// Kind classifies upstream failures.
type Kind int

const (
	// KindNetwork covers transport failures: DNS, refused connections, timeouts.
	KindNetwork Kind = iota + 1
	// KindHTTPStatus is a response outside the 2xx range.
	KindHTTPStatus
	// KindDecode is a body that is not a valid page envelope.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned by every Client call that fails.
type Error struct {
	Kind       Kind
	Op         string
	URL        string
	StatusCode int // set for KindHTTPStatus
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.URL, e.StatusCode)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s %s: %s error: %v", e.Op, e.URL, e.Kind, e.Err)
		}
		return fmt.Sprintf("%s %s: %s error", e.Op, e.URL, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinel kind errors, so errors.Is(err, ErrNetwork) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.URL == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrNetwork    = &Error{Kind: KindNetwork}
	ErrHTTPStatus = &Error{Kind: KindHTTPStatus}
	ErrDecode     = &Error{Kind: KindDecode}
)

// KindOf returns the kind of err, or 0 if err is not an upstream error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// StatusOf returns the upstream status code carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
