package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	consoleerrors "github.com/padmaja-j12/uidam-portal-padmaja-sub002/internal/errors"
)

// Error is a failed platform API call. It keeps the response metadata
// the caller needs to render an alert and the logs need for diagnosis.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	Method     string
	Path       string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s %s: %s (%s)", e.Method, e.Path, msg, e.Code)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, msg)
}

// Is maps HTTP status codes onto the console's sentinel errors so that
// callers can branch with errors.Is.
func (e *Error) Is(target error) bool {
	switch target {
	case consoleerrors.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case consoleerrors.ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case consoleerrors.ErrSessionExpired:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// errorBody covers the error shapes the platform emits: either a flat
// {code,message} object or a {messages:[{key,...}]} list.
type errorBody struct {
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
	Messages []struct {
		Key string `json:"key,omitempty"`
	} `json:"messages,omitempty"`
}

func decodeError(status int, method, path string, body []byte) *Error {
	apiErr := &Error{StatusCode: status, Method: method, Path: path}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Code = eb.Code
		apiErr.Message = eb.Message
		if apiErr.Message == "" && len(eb.Messages) > 0 {
			keys := make([]string, 0, len(eb.Messages))
			for _, m := range eb.Messages {
				if m.Key != "" {
					keys = append(keys, m.Key)
				}
			}
			apiErr.Message = strings.Join(keys, "; ")
		}
	}
	return apiErr
}
