package remote

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrInvalidRequest = errors.New("remote: invalid request")

// Error is returned for transport failures and non-2xx responses.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.StatusCode == http.StatusUnauthorized
}
