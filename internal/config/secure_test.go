// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vrcgroup/vrcgroup-cli/internal/errors"
	"github.com/vrcgroup/vrcgroup-cli/internal/utils"
)

func newFileStorage(t *testing.T) *SecureStorage {
	t.Helper()
	t.Setenv(EnvAuthToken, "")
	return &SecureStorage{
		useKeyring: false, // Don't use keyring in tests
		configDir:  t.TempDir(),
	}
}

func TestSecureStorage_SaveAndGetToken(t *testing.T) {
	storage := newFileStorage(t)
	token := "authcookie_0123456789abcdef"

	require.NoError(t, storage.SaveToken("  "+token+"\n"))

	got, err := storage.GetToken()
	require.NoError(t, err)
	if got != token {
		t.Errorf("retrieved token mismatch: got %q, want %q", utils.MaskToken(got), utils.MaskToken(token))
	}

	encFile := filepath.Join(storage.configDir, encryptedTokenFile)
	info, err := os.Stat(encFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	raw, err := os.ReadFile(encFile)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), token, "token must not be stored in plain text")
}

func TestSecureStorage_SaveEmptyToken(t *testing.T) {
	storage := newFileStorage(t)
	assert.Error(t, storage.SaveToken("   "))
}

func TestSecureStorage_MissingToken(t *testing.T) {
	storage := newFileStorage(t)

	_, err := storage.GetToken()
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthError(err))
}

func TestSecureStorage_EnvironmentTakesPrecedence(t *testing.T) {
	storage := newFileStorage(t)
	require.NoError(t, storage.SaveToken("authcookie_from_file_123"))

	t.Setenv(EnvAuthToken, "authcookie_from_env_456")

	got, err := storage.GetToken()
	require.NoError(t, err)
	assert.Equal(t, "authcookie_from_env_456", got)
	assert.Equal(t, "environment", storage.StorageInfo()["source"])
}

func TestSecureStorage_DeleteToken(t *testing.T) {
	storage := newFileStorage(t)
	require.NoError(t, storage.SaveToken("authcookie_0123456789"))

	require.NoError(t, storage.DeleteToken())
	_, err := storage.GetToken()
	assert.Error(t, err)

	// deleting again is fine
	assert.NoError(t, storage.DeleteToken())
}

func TestSecureStorage_CorruptEncryptedFile(t *testing.T) {
	storage := newFileStorage(t)
	require.NoError(t, os.WriteFile(filepath.Join(storage.configDir, encryptedTokenFile), []byte("not-base64!"), 0600))

	_, err := storage.GetToken()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decrypt auth token")

	info := storage.StorageInfo()
	assert.Equal(t, "not_found", info["source"])
	assert.Contains(t, info["error"], "failed to decrypt")
}

func TestSecureStorage_StorageInfo(t *testing.T) {
	storage := newFileStorage(t)
	assert.Equal(t, "not_found", storage.StorageInfo()["source"])
	assert.Equal(t, false, storage.StorageInfo()["secure"])

	require.NoError(t, storage.SaveToken("authcookie_0123456789"))
	info := storage.StorageInfo()
	assert.Equal(t, "encrypted_file", info["source"])
	assert.Equal(t, true, info["secure"])
	assert.Equal(t, filepath.Join(storage.configDir, encryptedTokenFile), info["location"])
}

func TestEncryptDecrypt(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}

	encrypted, err := encrypt([]byte("secret"), key)
	require.NoError(t, err)

	again, err := encrypt([]byte("secret"), key)
	require.NoError(t, err)
	assert.NotEqual(t, encrypted, again, "nonces must differ")

	plain, err := decrypt(encrypted, key)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(plain))

	wrongKey := make([]byte, 32)
	_, err = decrypt(encrypted, wrongKey)
	assert.Error(t, err)

	_, err = decrypt("AAAA", key)
	assert.Error(t, err)
}

func TestIsKeyringServiceError(t *testing.T) {
	assert.False(t, isKeyringServiceError(nil))
	assert.True(t, isKeyringServiceError(errString("The name is not activatable")))
	assert.False(t, isKeyringServiceError(errString("permission denied")))
}

type errString string

func (e errString) Error() string { return string(e) }
