package wsapi

import (
	"errors"
	"fmt"
)

// ErrLogical matches every *APIError.
var ErrLogical = errors.New("workspace api: non-zero code")

// APIError is a well-formed envelope whose code is not 0, returned by calls
// that have no Result to carry it (ListWorkspaces).
type APIError struct {
	Op   string
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("wsapi: %s: %s (code %d)", e.Op, e.Msg, e.Code)
	}
	return fmt.Sprintf("wsapi: %s failed with code %d", e.Op, e.Code)
}

// Is makes errors.Is(err, ErrLogical) hold.
func (e *APIError) Is(target error) bool {
	return target == ErrLogical
}

// StatusError is a non-2xx HTTP answer. It is a transport failure. Msg is
// the envelope message when the body carried one.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Msg        string
	Body       string
}

// Error returns the server message when there is one, so notifications show
// what the service said rather than the raw body.
func (e *StatusError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Body == "" {
		return fmt.Sprintf("wsapi: unexpected %d response from %s %s", e.StatusCode, e.Method, e.Path)
	}
	return fmt.Sprintf("wsapi: unexpected %d response from %s %s: %s", e.StatusCode, e.Method, e.Path, e.Body)
}
