package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized matches an *HTTPError carrying status 401
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNetwork matches a *NetworkError
	ErrNetwork = errors.New("network failure")
)

// NetworkError means no response was received: DNS, connection or transport timeout, or cancellation.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: could not reach server: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// HTTPError means the server answered with a non-2xx status.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string // Server supplied message field, or the status text
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Message)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// IsUnauthorized reports whether err came from a 401 response
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNetwork reports whether err means the server could not be reached
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an *HTTPError.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

func newHTTPError(req *http.Request, status int, body []byte) *HTTPError {
	return &HTTPError{
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: status,
		Message:    errorMessage(status, body),
		Body:       body,
	}
}

func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 && !strings.HasPrefix(text, "{") {
		return text
	}
	return http.StatusText(status)
}
