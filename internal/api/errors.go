package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound marks a backend "no results / not found" condition.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx reply or an application-level error payload.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error %d", e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// notFoundPhrases is the compatibility fallback for backends that report a miss
// only through the message text.
var notFoundPhrases = []string{
	"not found",
	"no domains found",
}

// IsNotFound reports whether err is a search miss. The 404 status code is
// authoritative; the message scan only covers errors without one.
// FIXME: confirm the backend never reports real failures with "not found" text
// before dropping the message scan or relying on it further.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, phrase := range notFoundPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
