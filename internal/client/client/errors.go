package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// RequestError describes a failed request. StatusCode is zero for transport
// failures, in which case the error wraps ErrUnavailable.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is reports 401 and 403 responses as ErrUnauthorized.
func (e *RequestError) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// Message picks the text a screen should show for err: the server-supplied
// message when there is one, otherwise fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if errors.As(err, &re) && re.StatusCode != 0 && re.Message != "" {
		return re.Message
	}
	return fallback
}
