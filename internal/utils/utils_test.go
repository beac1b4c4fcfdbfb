// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{"empty", "", ""},
		{"very short", "ab", "**"},
		{"short", "abcd", "ab**"},
		{"eight chars", "abcdefgh", "ab******"},
		{"normal", "authcookie_0123456789", "auth*****************"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskToken(tt.token))
		})
	}
}

func TestMaskSensitiveString(t *testing.T) {
	assert.Equal(t, "", MaskSensitiveString("", 3))
	assert.Equal(t, "***", MaskSensitiveString("abc", 3))
	assert.Equal(t, "usr_*****", MaskSensitiveString("usr_12345", 4))
}

func TestRedactCookieHeader(t *testing.T) {
	assert.Equal(t, "", RedactCookieHeader(""))
	assert.Equal(t, "auth=auth*****************", RedactCookieHeader("auth=authcookie_0123456789"))
	assert.Equal(t, "auth=abcd******; twoFactorAuth=ab****",
		RedactCookieHeader("auth=abcdefghij; twoFactorAuth=abcdef"))
}

func TestSanitizeErrorMessage(t *testing.T) {
	token := "authcookie_0123456789"

	assert.Equal(t, "", SanitizeErrorMessage(nil, token))
	assert.Equal(t,
		"request with auth***************** failed",
		SanitizeErrorMessage(errors.New("request with "+token+" failed"), token))
	assert.Equal(t,
		"bad header Cookie: auth=othe********; path=/",
		SanitizeErrorMessage(errors.New("bad header Cookie: auth=othertoken12; path=/"), token))
}

func TestValidateTokenFormat(t *testing.T) {
	assert.Error(t, ValidateTokenFormat(""))
	assert.Error(t, ValidateTokenFormat("short"))
	assert.Error(t, ValidateTokenFormat("authcookie with space"))
	assert.Error(t, ValidateTokenFormat("authcookie_1;path=/"))
	assert.NoError(t, ValidateTokenFormat("authcookie_0123456789"))
}

func TestWriteJSONAtomic_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "settings.json")

	type payload struct {
		Theme string `json:"theme"`
	}

	require.NoError(t, WriteJSONAtomic(path, payload{Theme: "dark"}, 0600))
	assert.False(t, FileExists(path+".tmp"), "temp file must be renamed away")

	var got payload
	require.NoError(t, ReadJSON(path, &got))
	assert.Equal(t, "dark", got.Theme)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestReadJSON_Errors(t *testing.T) {
	dir := t.TempDir()

	var v map[string]any
	err := ReadJSON(filepath.Join(dir, "missing.json"), &v)
	assert.True(t, os.IsNotExist(err))

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0600))
	err = ReadJSON(corrupt, &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode JSON")
}

func TestRemoveFileIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	assert.NoError(t, RemoveFileIfExists(path))
	assert.False(t, FileExists(path))
	assert.NoError(t, RemoveFileIfExists(path))
}

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "...", TruncateWithEllipsis("anything", 3))
	assert.Equal(t, "short", TruncateWithEllipsis("short", 10))
	assert.Equal(t, "Photog...", TruncateWithEllipsis("Photography Club", 9))
	assert.LessOrEqual(t, len([]rune(TruncateWithEllipsis("写真部のグループです", 8))), 8)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "first    line", FirstLine("first\tline\r\nsecond"))
	assert.Equal(t, "only", FirstLine("only"))
}

func TestFormatTimeAgo(t *testing.T) {
	assert.Equal(t, "5m ago", FormatTimeAgo(time.Now().Add(-5*time.Minute-time.Second)))
	assert.Equal(t, "3d ago", FormatTimeAgo(time.Now().Add(-72*time.Hour-time.Minute)))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(nil))
	assert.Equal(t, "-", FormatDate(&time.Time{}))

	ts := time.Date(2024, 3, 9, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-03-09", FormatDate(&ts))
}
