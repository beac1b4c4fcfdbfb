// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package errors

import "strings"

// UpdateReason tags a failed group update.
type UpdateReason string

const (
	ReasonRateLimit    UpdateReason = "RATE_LIMIT"
	ReasonNetworkError UpdateReason = "NETWORK_ERROR"
	ReasonUnknown      UpdateReason = "UNKNOWN"
)

func (r UpdateReason) String() string {
	return string(r)
}

// Classify maps an arbitrary failure value to an UpdateReason by inspecting
// its text: the value itself for strings, Error() for errors. Any other value
// has no text and is UNKNOWN. "429" wins over "network".
func Classify(v any) UpdateReason {
	var text string
	switch e := v.(type) {
	case string:
		text = e
	case error:
		text = e.Error()
	default:
		return ReasonUnknown
	}

	if strings.Contains(text, "429") {
		return ReasonRateLimit
	}
	if strings.Contains(strings.ToLower(text), "network") {
		return ReasonNetworkError
	}
	return ReasonUnknown
}
