// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package errors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// NoTokenError returns a consistent error message for a missing auth token
func NoTokenError() error {
	return &AuthError{
		Message: `auth token not configured. You have 2 options:

A) Run 'vrcgroup login' for interactive setup (recommended)
B) Set VRCGROUP_AUTH_TOKEN environment variable in your shell config (e.g., ~/.bashrc, ~/.zshrc)`,
		Reason: "missing_token",
	}
}

type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeAPI
	ErrorTypeNetwork
	ErrorTypeAuth
	ErrorTypeValidation
	ErrorTypeRateLimit
	ErrorTypeTimeout
	ErrorTypeNotFound
)

type APIError struct {
	StatusCode int
	Status     string
	Message    string
	ErrorType  ErrorType
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("API error: %s (status %d)", e.Status, e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode || e.ErrorType == t.ErrorType
}

type NetworkError struct {
	Err       error
	Operation string
	URL       string
}

func (e *NetworkError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type AuthError struct {
	Message string
	Reason  string
}

func (e *AuthError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("authentication failed: %s (%s)", e.Message, e.Reason)
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// RateLimitError always renders the 429 status so that substring
// classification recognises it.
type RateLimitError struct {
	RetryAfter string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "rate limit exceeded"
	}
	if e.RetryAfter != "" {
		return fmt.Sprintf("%s. Please wait %s before retrying (status 429)", msg, e.RetryAfter)
	}
	return fmt.Sprintf("%s (status 429)", msg)
}

var (
	ErrNoToken           = &AuthError{Message: "No auth token configured", Reason: "missing_token"}
	ErrInvalidToken      = &AuthError{Message: "Invalid or expired token", Reason: "http_401"}
	ErrServerUnavailable = &APIError{StatusCode: 503, Status: "Service Unavailable", ErrorType: ErrorTypeAPI}
)

func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}

	return false
}

func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}

	return false
}

func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	var ne net.Error
	return errors.As(err, &ne)
}

func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}

	return false
}
