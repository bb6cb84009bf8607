package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/groove-cli/groove/internal/shared"
	"golang.org/x/oauth2"
)

// TokenStore persists the OAuth token to disk, encrypted at rest so the
// refresh token never sits in plaintext. The key is derived from the client
// secret, so changing credentials invalidates stored tokens.
type TokenStore struct {
	path string
	key  []byte
}

// NewTokenStore creates a store writing to path; an empty path selects the
// default location under the XDG config directory.
func NewTokenStore(path, clientSecret string) (*TokenStore, error) {
	if path == "" {
		var err error
		path, err = xdg.ConfigFile(filepath.Join("groove", "tokens.enc"))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve token path: %w", err)
		}
	}

	key := sha256.Sum256([]byte(clientSecret))
	return &TokenStore{path: path, key: key[:]}, nil
}

// Path returns the file the store reads and writes.
func (s *TokenStore) Path() string { return s.path }

// Save encrypts and writes the token, creating parent directories as needed.
// The file is written with owner-only permissions.
func (s *TokenStore) Save(token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	sealed, err := s.seal(data)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(base64.StdEncoding.EncodeToString(sealed)), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// Load reads and decrypts the stored token. A missing file means the user has
// not authenticated; a corrupt or foreign-key file is reported distinctly.
func (s *TokenStore) Load() (*oauth2.Token, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, shared.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	sealed, err := base64.StdEncoding.DecodeString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("corrupt token file: %w", err)
	}

	data, err := s.open(sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("corrupt token file: %w", err)
	}

	return &token, nil
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *TokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

func (s *TokenStore) seal(plaintext []byte) ([]byte, error) {
	gcm, err := s.cipher()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *TokenStore) open(sealed []byte) ([]byte, error) {
	gcm, err := s.cipher()
	if err != nil {
		return nil, err
	}

	if len(sealed) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func (s *TokenStore) cipher() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
