package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int
	Message string
	// Code is a machine-readable reason when the backend supplies one.
	Code string
	// Fields carries per-field messages from validation failures.
	Fields map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// NotFound reports a 404 response.
func (e *Error) NotFound() bool {
	return e != nil && e.Status == http.StatusNotFound
}

// Unauthorized reports a 401 or 403 response.
func (e *Error) Unauthorized() bool {
	return e != nil && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// FieldSummary joins field errors as "field: message" in key order.
func (e *Error) FieldSummary() string {
	if e == nil || len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// errorBody mirrors the backend's error payload.
type errorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Details string            `json:"details"`
	Errors  map[string]string `json:"errors"`
}

// decodeError builds an *Error from a failed response. fallback is used when
// the body has no message; a %d verb in it receives the status code.
func decodeError(resp *http.Response, fallback string) *Error {
	if fallback == "" {
		fallback = "Request failed with status: %d"
	}
	apiErr := &Error{Status: resp.StatusCode, Message: fallback}
	if strings.Contains(fallback, "%d") {
		apiErr.Message = fmt.Sprintf(fallback, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return apiErr
	}
	if msg := strings.TrimSpace(body.Message); msg != "" {
		apiErr.Message = msg
	}
	apiErr.Code = strings.TrimSpace(body.Code)
	if len(body.Errors) > 0 {
		apiErr.Fields = body.Errors
	}
	return apiErr
}

// Message returns the user-facing text for err: the backend's message for an
// *Error, otherwise fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

// ErrNotImage is returned when an upload is not an image.
var ErrNotImage = errors.New("file is not an image")
