// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cogitto/cogitto-tui/internal/api"
	"github.com/cogitto/cogitto-tui/internal/util"
)

const credentialsFile = "credentials.json"

// credentials is the on-disk shape. The key names mirror the storage
// keys the Cogitto web client uses, so support staff reading either
// store see the same vocabulary.
type credentials struct {
	AccessToken  string          `json:"cogitto_access_token"`
	RefreshToken string          `json:"cogitto_refresh_token"`
	User         json.RawMessage `json:"cogitto_user,omitempty"`
}

// Store reads and writes the credential file. Safe for concurrent use;
// the UI reads tokens from the update loop while the API client reads
// them from request goroutines.
type Store struct {
	mu   sync.RWMutex
	path string
	cred credentials
}

// NewStore opens the credential store rooted at dir, loading whatever
// is already on disk. A missing or unreadable file is not an error; it
// just means nobody is logged in.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".cogitto")
	}

	s := &Store{path: filepath.Join(dir, credentialsFile)}
	s.load()
	return s, nil
}

// load reads the credential file into memory. Corrupt JSON is treated
// the same as no file: the user re-authenticates instead of staring at
// a parse error.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var cred credentials
	if err := json.Unmarshal(data, &cred); err != nil {
		return
	}
	s.cred = cred
}

// AccessToken returns the stored access token, or "" when logged out.
// Implements api.TokenSource.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred.AccessToken
}

// RefreshToken returns the stored refresh token, or "" when logged out.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred.RefreshToken
}

// IsAuthenticated reports whether an access token is present. It says
// nothing about expiry; the backend answers that with a 401.
func (s *Store) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

// CurrentUser returns the stored user snapshot, or nil when logged out
// or when the stored snapshot cannot be parsed.
func (s *Store) CurrentUser() *api.User {
	s.mu.RLock()
	raw := s.cred.User
	s.mu.RUnlock()

	if len(raw) == 0 {
		return nil
	}
	var user api.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil
	}
	return &user
}

// SaveCredentials persists the token pair and user snapshot from a
// successful login. All three entries are replaced in one atomic write.
func (s *Store) SaveCredentials(tokens *api.AuthTokens) error {
	if tokens == nil || tokens.AccessToken == "" {
		return errors.New("refusing to save empty credentials")
	}

	rawUser, err := json.Marshal(tokens.User)
	if err != nil {
		return fmt.Errorf("failed to encode user snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred = credentials{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         rawUser,
	}
	return s.persist()
}

// Logout removes all stored credentials. Calling it while already
// logged out is a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred = credentials{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credential file: %w", err)
	}
	return nil
}

// persist writes the in-memory credentials to disk. Caller holds mu.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.cred, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := util.AtomicWriteFileWithDir(s.path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	return nil
}
