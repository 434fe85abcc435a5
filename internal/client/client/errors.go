package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidName is returned when an explicit display name is too short.
	ErrInvalidName = errors.New("invalid name")
	// ErrEmptyBoardID is returned when a board id is blank.
	ErrEmptyBoardID = errors.New("board id is required")

	// ErrAuth means no valid access token could be obtained.
	ErrAuth = errors.New("access token unavailable")

	// ErrUnavailable means the service could not be reached.
	ErrUnavailable = errors.New("server unavailable")
	// ErrHTTPStatus means the service answered with a non-2xx status.
	ErrHTTPStatus = errors.New("unexpected http status")

	// ErrParse means a response body did not have the expected shape.
	ErrParse = errors.New("malformed response")

	// ErrNoIdentity means the operation needs a statistic id and none is known.
	ErrNoIdentity = errors.New("no statistic id registered for this player")
)

// StatusError describes a non-2xx response. It unwraps to ErrHTTPStatus.
type StatusError struct {
	Code      int
	Body      string
	RequestID string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error { return ErrHTTPStatus }

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}
