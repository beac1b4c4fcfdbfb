// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"io"
	"net/http"

	"github.com/vrcgroup/vrcgroup-cli/internal/errors"
)

// ValidateResponse validates HTTP response status codes and returns an error if not valid
func ValidateResponse(resp *http.Response, allowedCodes ...int) error {
	if len(allowedCodes) == 0 {
		allowedCodes = []int{http.StatusOK}
	}

	for _, code := range allowedCodes {
		if resp.StatusCode == code {
			return nil
		}
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return errors.ParseAPIError(resp.StatusCode, body)
}

// ValidateResponseOK validates that the response status is 200 OK
func ValidateResponseOK(resp *http.Response) error {
	return ValidateResponse(resp, http.StatusOK)
}

// ValidateResponseOKOrNoContent accepts 200 OK and 204 No Content
func ValidateResponseOKOrNoContent(resp *http.Response) error {
	return ValidateResponse(resp, http.StatusOK, http.StatusNoContent)
}
