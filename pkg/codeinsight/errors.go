package codeinsight

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// APIError represents a failed Code Insight API call
type APIError struct {
	URL        string        `json:"url"`
	Method     string        `json:"method"`
	StatusCode int           `json:"status_code,omitempty"`
	Duration   time.Duration `json:"duration"`
	Message    string        `json:"message"`
	ErrorType  string        `json:"error_type"` // timeout, connection_refused, dns, tls, certificate, http

	// errorMessages returned by the server, if any
	ServerMessages []string `json:"server_messages,omitempty"`
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("Code Insight API %s %s failed with status %d: %s",
			e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("Code Insight API %s %s failed: %s (type: %s)",
		e.Method, e.URL, e.Message, e.ErrorType)
}

// IsClientError reports whether the server rejected the request itself (4xx)
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// AsAPIError unwraps err into an *APIError
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// errorBody is the error payload Code Insight returns on failed calls
type errorBody struct {
	ErrorMessages []string `json:"errorMessages"`
	Message       string   `json:"message"`
}

func newStatusError(resp *Response) *APIError {
	apiErr := &APIError{
		URL:        resp.RequestURL,
		Method:     resp.RequestMethod,
		StatusCode: resp.StatusCode,
		Duration:   resp.Duration,
		ErrorType:  "http",
		Message:    http.StatusText(resp.StatusCode),
	}

	var body errorBody
	if err := json.Unmarshal(resp.Body, &body); err == nil {
		apiErr.ServerMessages = body.ErrorMessages
		if body.Message != "" && len(apiErr.ServerMessages) == 0 {
			apiErr.ServerMessages = []string{body.Message}
		}
	}
	if len(apiErr.ServerMessages) > 0 {
		apiErr.Message = strings.Join(apiErr.ServerMessages, "; ")
	}

	return apiErr
}

// classifyHTTPError classifies transport errors for logging
func classifyHTTPError(err error) string {
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout"):
		return "timeout"
	case strings.Contains(errStr, "connection refused"):
		return "connection_refused"
	case strings.Contains(errStr, "no such host"):
		return "dns"
	case strings.Contains(errStr, "certificate"):
		return "certificate"
	case strings.Contains(errStr, "tls"):
		return "tls"
	case strings.Contains(errStr, "context canceled"):
		return "canceled"
	default:
		return "unknown"
	}
}
