// Copyright (c) 2024-2025 Cogitto Health
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cogitto/cogitto-tui/internal/api"
)

func testTokens() *api.AuthTokens {
	return &api.AuthTokens{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-xyz",
		TokenType:    "bearer",
		ExpiresIn:    3600,
		User:         api.User{ID: "u1", Email: "alex@example.com", FullName: "Alex"},
	}
}

func TestStore_EmptyDirIsLoggedOut(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if store.IsAuthenticated() {
		t.Error("Fresh store should not be authenticated")
	}
	if store.AccessToken() != "" {
		t.Errorf("AccessToken = %q, want empty", store.AccessToken())
	}
	if store.CurrentUser() != nil {
		t.Error("CurrentUser should be nil when logged out")
	}
}

func TestStore_SaveAndReload(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.SaveCredentials(testTokens()); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	// A second store over the same dir sees the saved login.
	reloaded, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore (reload) failed: %v", err)
	}
	if !reloaded.IsAuthenticated() {
		t.Fatal("Reloaded store should be authenticated")
	}
	if got := reloaded.AccessToken(); got != "access-abc" {
		t.Errorf("AccessToken = %q, want %q", got, "access-abc")
	}
	if got := reloaded.RefreshToken(); got != "refresh-xyz" {
		t.Errorf("RefreshToken = %q, want %q", got, "refresh-xyz")
	}

	user := reloaded.CurrentUser()
	if user == nil {
		t.Fatal("CurrentUser should not be nil after login")
	}
	if user.Email != "alex@example.com" {
		t.Errorf("User email = %q, want %q", user.Email, "alex@example.com")
	}
}

func TestStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.SaveCredentials(testTokens()); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, credentialsFile))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Credential file permissions: got %o, want 0600", perm)
	}
}

func TestStore_RejectsEmptyCredentials(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := store.SaveCredentials(nil); err == nil {
		t.Error("SaveCredentials(nil) should fail")
	}
	if err := store.SaveCredentials(&api.AuthTokens{}); err == nil {
		t.Error("SaveCredentials with empty access token should fail")
	}
}

func TestStore_Logout(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.SaveCredentials(testTokens()); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	if err := store.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if store.IsAuthenticated() {
		t.Error("Store should not be authenticated after logout")
	}
	if _, err := os.Stat(filepath.Join(dir, credentialsFile)); !os.IsNotExist(err) {
		t.Error("Credential file should be removed on logout")
	}

	// Logging out twice is fine.
	if err := store.Logout(); err != nil {
		t.Errorf("Second Logout failed: %v", err)
	}
}

func TestStore_CorruptFileMeansLoggedOut(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, credentialsFile)
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if store.IsAuthenticated() {
		t.Error("Corrupt credential file should read as logged out")
	}

	// A fresh login overwrites the corrupt file cleanly.
	if err := store.SaveCredentials(testTokens()); err != nil {
		t.Fatalf("SaveCredentials after corruption failed: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Error("Store should be authenticated after re-login")
	}
}

func TestStore_CorruptUserSnapshotIsNil(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, credentialsFile)
	raw := `{"cogitto_access_token":"abc","cogitto_refresh_token":"xyz","cogitto_user":"not an object"}`
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Error("Token should still load when only the user snapshot is bad")
	}
	if store.CurrentUser() != nil {
		t.Error("CurrentUser should be nil for an unparseable snapshot")
	}
}
