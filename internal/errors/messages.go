// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var statusMessages = map[string]string{
	"INVALID_TOKEN":       "Invalid or expired token. Run 'vrcgroup login' to sign in again",
	"FORBIDDEN":           "Forbidden: insufficient permissions",
	"RATE_LIMIT_EXCEEDED": "Rate limit exceeded. Please wait before retrying",
	"SERVER_ERROR":        "Server error. Please try again later",
	"TIMEOUT":             "Request timed out",
	"NOT_FOUND":           "Resource not found",
	"VALIDATION_ERROR":    "Invalid input provided. Please check your request",
}

// GetStatusMessages returns the canned user-facing messages keyed by code
func GetStatusMessages() map[string]string {
	out := make(map[string]string, len(statusMessages))
	for k, v := range statusMessages {
		out[k] = v
	}
	return out
}

// APIErrorResponse is the remote error envelope: {"error": {"message", "status_code"}}.
// Some endpoints answer with a flat {"message": ...} body instead.
type APIErrorResponse struct {
	Error struct {
		Message    string `json:"message"`
		StatusCode int    `json:"status_code"`
	} `json:"error"`
	Message string `json:"message"`
}

func ParseAPIError(statusCode int, body []byte) error {
	var apiErr APIErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil {
		message := apiErr.Error.Message
		if message == "" {
			message = apiErr.Message
		}
		return createErrorFromStatusCode(statusCode, message)
	}

	message := strings.TrimSpace(string(body))
	return createErrorFromStatusCode(statusCode, message)
}

func createErrorFromStatusCode(statusCode int, message string) error {
	var errorType ErrorType

	switch statusCode {
	case 401:
		if message == "" {
			message = statusMessages["INVALID_TOKEN"]
		}
		return &AuthError{
			Message: message,
			Reason:  "http_401",
		}

	case 403:
		if message == "" {
			message = statusMessages["FORBIDDEN"]
		}
		return &AuthError{
			Message: message,
			Reason:  "http_403",
		}

	case 404:
		errorType = ErrorTypeNotFound
		if message == "" {
			message = statusMessages["NOT_FOUND"]
		}

	case 429:
		if message == "" {
			message = statusMessages["RATE_LIMIT_EXCEEDED"]
		}
		return &RateLimitError{Message: message}

	case 408:
		errorType = ErrorTypeTimeout
		if message == "" {
			message = statusMessages["TIMEOUT"]
		}

	case 400, 422:
		errorType = ErrorTypeValidation
		if message == "" {
			message = statusMessages["VALIDATION_ERROR"]
		}
		return &ValidationError{
			Message: message,
		}

	case 500, 502, 503, 504:
		errorType = ErrorTypeAPI
		if message == "" {
			message = statusMessages["SERVER_ERROR"]
		}

	default:
		errorType = ErrorTypeUnknown
		if message == "" {
			message = fmt.Sprintf("HTTP error: %d", statusCode)
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Status:     getHTTPStatusText(statusCode),
		Message:    message,
		ErrorType:  errorType,
	}
}

func getHTTPStatusText(code int) string {
	switch code {
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 408:
		return "Request Timeout"
	case 429:
		return "Too Many Requests"
	case 500:
		return "Internal Server Error"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	case 504:
		return "Gateway Timeout"
	default:
		return fmt.Sprintf("HTTP %d", code)
	}
}

func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Error()
	}

	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return rateLimitErr.Error()
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return fmt.Sprintf("Network error: %v. Please check your connection and try again.", netErr.Err)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return apiErr.Error()
	}

	return err.Error()
}
