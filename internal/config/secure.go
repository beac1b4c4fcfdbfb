// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/zalando/go-keyring"

	apperrors "github.com/vrcgroup/vrcgroup-cli/internal/errors"
)

const (
	keyringService = "VRChatGroupManager"
	keyringAccount = "api_token"

	encryptedTokenFile = ".auth_token.enc"
)

// Token lookup order:
// 1. Environment variable (VRCGROUP_AUTH_TOKEN) for scripts and CI
// 2. System keyring on macOS/Windows or a Linux desktop session
// 3. Encrypted file (AES-256-GCM) everywhere else

// TokenSource names where a token was found
type TokenSource string

const (
	SourceEnvironment   TokenSource = "environment"
	SourceKeyring       TokenSource = "system_keyring"
	SourceEncryptedFile TokenSource = "encrypted_file"
	SourceNone          TokenSource = "not_found"
)

// SecureStorage handles secure storage of the auth token
type SecureStorage struct {
	useKeyring bool
	configDir  string
}

// NewSecureStorage creates a new secure storage instance
func NewSecureStorage() *SecureStorage {
	return &SecureStorage{
		useKeyring: isKeyringAvailable(),
		configDir:  Dir(),
	}
}

// NewFileStorageAt creates storage that only uses the encrypted file in dir
func NewFileStorageAt(dir string) *SecureStorage {
	return &SecureStorage{configDir: dir}
}

func (s *SecureStorage) encryptedFile() string {
	return filepath.Join(s.configDir, encryptedTokenFile)
}

// SaveToken stores the token in the keyring, or the encrypted file when
// the keyring cannot be used
func (s *SecureStorage) SaveToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("auth token cannot be empty")
	}

	if s.useKeyring {
		if err := keyring.Set(keyringService, keyringAccount, token); err == nil {
			_ = os.Remove(s.encryptedFile())
			return nil
		}
	}

	return s.saveEncryptedToken(token)
}

// GetToken retrieves the token; a missing token is an auth error
func (s *SecureStorage) GetToken() (string, error) {
	token, _, err := s.lookup()
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", apperrors.NoTokenError()
	}
	return token, nil
}

func (s *SecureStorage) lookup() (string, TokenSource, error) {
	if envToken := os.Getenv(EnvAuthToken); envToken != "" {
		return envToken, SourceEnvironment, nil
	}

	if s.useKeyring {
		token, err := keyring.Get(keyringService, keyringAccount)
		if err == nil && token != "" {
			return token, SourceKeyring, nil
		}
	}

	token, err := s.getEncryptedToken()
	if err != nil {
		return "", SourceNone, err
	}
	if token != "" {
		return token, SourceEncryptedFile, nil
	}
	return "", SourceNone, nil
}

// DeleteToken removes the token from every storage location. Deleting a
// token that does not exist is not an error.
func (s *SecureStorage) DeleteToken() error {
	var failures []string

	if s.useKeyring {
		if err := keyring.Delete(keyringService, keyringAccount); err != nil &&
			!errors.Is(err, keyring.ErrNotFound) && !isKeyringServiceError(err) {
			failures = append(failures, fmt.Sprintf("keyring: %v", err))
		}
	}

	if err := os.Remove(s.encryptedFile()); err != nil && !os.IsNotExist(err) {
		failures = append(failures, fmt.Sprintf("encrypted file: %v", err))
	}

	if len(failures) > 0 {
		return fmt.Errorf("failed to remove auth token: %s", strings.Join(failures, "; "))
	}
	return nil
}

// StorageInfo describes where the current token comes from
func (s *SecureStorage) StorageInfo() map[string]any {
	info := make(map[string]any)

	_, source, err := s.lookup()
	info["source"] = string(source)
	switch source {
	case SourceEnvironment:
		info["secure"] = true
	case SourceKeyring:
		info["secure"] = true
		info["keyring_type"] = getKeyringType()
	case SourceEncryptedFile:
		info["secure"] = true
		info["location"] = s.encryptedFile()
	default:
		info["secure"] = false
		if err != nil {
			info["error"] = err.Error()
		}
	}
	return info
}

// isKeyringServiceError checks if the error is due to keyring service not being available
func isKeyringServiceError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return errStr == "The name is not activatable" ||
		errStr == "Cannot autolaunch D-Bus without X11 $DISPLAY" ||
		errStr == "The name org.freedesktop.secrets was not provided by any .service files"
}

func (s *SecureStorage) saveEncryptedToken(token string) error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	encrypted, err := encrypt([]byte(token), s.getEncryptionKey())
	if err != nil {
		return fmt.Errorf("failed to encrypt auth token: %w", err)
	}

	if err := os.WriteFile(s.encryptedFile(), []byte(encrypted), 0600); err != nil {
		return fmt.Errorf("failed to save encrypted auth token: %w", err)
	}
	return nil
}

func (s *SecureStorage) getEncryptedToken() (string, error) {
	data, err := os.ReadFile(s.encryptedFile())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read encrypted auth token: %w", err)
	}

	decrypted, err := decrypt(string(data), s.getEncryptionKey())
	if err != nil {
		return "", fmt.Errorf("failed to decrypt auth token: %w", err)
	}
	return string(decrypted), nil
}

// getEncryptionKey generates a machine-specific encryption key
func (s *SecureStorage) getEncryptionKey() []byte {
	var parts []string

	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		parts = append(parts, hostname)
	}

	if username := os.Getenv("USER"); username != "" {
		parts = append(parts, username)
	} else if username := os.Getenv("USERNAME"); username != "" {
		parts = append(parts, username)
	}

	if home, err := os.UserHomeDir(); err == nil {
		parts = append(parts, home)
	}

	if runtime.GOOS == "linux" {
		if machineID, err := os.ReadFile("/etc/machine-id"); err == nil {
			parts = append(parts, string(machineID))
		} else if machineID, err := os.ReadFile("/var/lib/dbus/machine-id"); err == nil {
			parts = append(parts, string(machineID))
		}
	}

	parts = append(parts, keyringService+"-"+keyringAccount)

	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hash[:]
}

// isKeyringAvailable checks if system keyring is available
func isKeyringAvailable() bool {
	switch runtime.GOOS {
	case "darwin", "windows":
		return true
	case "linux":
		// headless sessions rarely have a secret service running
		if os.Getenv("SSH_CONNECTION") != "" || os.Getenv("CONTAINER") != "" {
			return false
		}
		if _, err := os.Stat("/.dockerenv"); err == nil {
			return false
		}
		if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
			return false
		}

		hasDesktop := os.Getenv("DESKTOP_SESSION") != "" ||
			os.Getenv("GNOME_DESKTOP_SESSION_ID") != "" ||
			os.Getenv("KDE_FULL_SESSION") != "" ||
			os.Getenv("XDG_CURRENT_DESKTOP") != ""
		hasDisplay := os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""

		return hasDesktop && hasDisplay
	default:
		return false
	}
}

// encrypt encrypts data using AES-GCM
func encrypt(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, data, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts data using AES-GCM
func decrypt(encrypted string, key []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func getKeyringType() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS Keychain"
	case "windows":
		return "Windows Credential Manager"
	case "linux":
		if os.Getenv("GNOME_DESKTOP_SESSION_ID") != "" {
			return "GNOME Keyring"
		}
		if os.Getenv("KDE_FULL_SESSION") != "" {
			return "KWallet"
		}
		return "Linux Secret Service"
	default:
		return "Unknown"
	}
}
