package auth

import (
	"os"
	"strings"
)

// FileStore persists the issued session token between CLI invocations,
// owner-readable only.
type FileStore struct {
	Path string
}

// Save writes the token with 0600 permissions.
func (s *FileStore) Save(token string) error {
	return os.WriteFile(s.Path, []byte(token), 0o600)
}

// Load returns the stored token, or "" when none is stored.
func (s *FileStore) Load() string {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// Clear removes the stored token. Logout always succeeds from the
// user's perspective, so a missing file is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
