package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	ErrEmptyBaseURL     = errors.New("empty base URL")
	ErrInvalidURLScheme = errors.New("invalid URL scheme")
)

// APIError is returned for any response outside the 2xx range.
type APIError struct {
	Method       string
	Path         string
	StatusCode   int
	Response     *http.Response
	ResponseBody []byte
}

// errorBody covers the error shapes of both management APIs.
type errorBody struct {
	Message     string `json:"message"`
	Description string `json:"description"`
	Error       string `json:"error"`
	ErrorCode   string `json:"error_code"`
}

// Message extracts a human readable reason from a JSON response body, if there is one.
func (e *APIError) Message() string {
	if e.Response == nil || !IsContentTypeJSON(e.Response.Header) {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(e.ResponseBody, &body); err != nil {
		return ""
	}
	switch {
	case body.Message != "":
		return body.Message
	case body.Description != "":
		return body.Description
	case body.Error != "":
		return body.Error
	}
	return body.ErrorCode
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected response status %d", e.Method, e.Path, e.StatusCode)
	if m := e.Message(); m != "" {
		return fmt.Sprintf("%s: %s", msg, m)
	}
	return msg
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsRetryable reports whether err is worth retrying: network errors, 408, 429 and 5xx responses.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusRequestTimeout, apiErr.StatusCode == http.StatusTooManyRequests:
			return true
		case apiErr.StatusCode >= 500:
			return true
		}
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
