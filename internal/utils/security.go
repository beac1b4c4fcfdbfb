// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package utils

import (
	"fmt"
	"strings"
)

// MaskToken masks a secret for display, showing only the first 4 characters
func MaskToken(token string) string {
	if len(token) <= 8 {
		return MaskSensitiveString(token, 2)
	}
	return MaskSensitiveString(token, 4)
}

// MaskSensitiveString masks any sensitive string for display
func MaskSensitiveString(value string, showChars int) string {
	if value == "" {
		return ""
	}

	if len(value) <= showChars {
		return strings.Repeat("*", len(value))
	}

	return value[:showChars] + strings.Repeat("*", len(value)-showChars)
}

// RedactCookieHeader masks the value of every cookie in a Cookie header
func RedactCookieHeader(headerValue string) string {
	if headerValue == "" {
		return ""
	}

	parts := strings.Split(headerValue, ";")
	for i, part := range parts {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			parts[i] = MaskToken(strings.TrimSpace(part))
			continue
		}
		parts[i] = name + "=" + MaskToken(value)
	}
	return strings.Join(parts, "; ")
}

// SanitizeErrorMessage removes the token and any auth cookie value from an error message
func SanitizeErrorMessage(err error, token string) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()

	if token != "" && strings.Contains(errMsg, token) {
		errMsg = strings.ReplaceAll(errMsg, token, MaskToken(token))
	}

	if idx := strings.Index(errMsg, "auth="); idx >= 0 {
		start := idx + len("auth=")
		end := start
		for end < len(errMsg) && errMsg[end] != ' ' && errMsg[end] != ';' && errMsg[end] != '"' {
			end++
		}
		if end > start {
			value := errMsg[start:end]
			errMsg = errMsg[:start] + MaskToken(value) + errMsg[end:]
		}
	}

	return errMsg
}

// ValidateTokenFormat performs basic validation on an auth token
// without revealing specifics about what's wrong
func ValidateTokenFormat(token string) error {
	if token == "" {
		return fmt.Errorf("auth token is required")
	}
	if len(token) < 10 {
		return fmt.Errorf("invalid auth token format")
	}
	if strings.ContainsAny(token, " \t\r\n;") {
		return fmt.Errorf("invalid auth token format")
	}
	return nil
}
