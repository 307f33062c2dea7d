// Package session persists the CLI's sign-in between invocations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"
)

const (
	DefaultPath = "~/.journal"

	credentialsKey = "credentials"
)

// ErrNoSession means nobody has signed in yet, or the session was cleared.
var ErrNoSession = errors.New("not signed in")

// Credentials is what a sign-in leaves behind.
type Credentials struct {
	APIURL    string    `json:"apiUrl"`
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the token is past its expiry at now.
func (c Credentials) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Store is a small on-disk key/value store holding the current credentials.
type Store struct {
	d        *diskv.Diskv
	basePath string
}

// Open returns a store rooted at path. A leading ~ is expanded to the home directory.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	basePath, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("resolve session path %q: %w", path, err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 64 * 1024,
			FilePerm:     0o600,
			PathPerm:     0o700,
		}),
		basePath: basePath,
	}, nil
}

func (s *Store) BasePath() string { return s.basePath }

// Load returns the saved credentials or ErrNoSession.
func (s *Store) Load() (*Credentials, error) {
	raw, err := s.d.Read(credentialsKey)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if c.Token == "" {
		return nil, ErrNoSession
	}
	return &c, nil
}

func (s *Store) Save(c Credentials) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.d.Write(credentialsKey, raw); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear forgets the saved credentials. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if !s.d.Has(credentialsKey) {
		return nil
	}
	if err := s.d.Erase(credentialsKey); err != nil {
		return fmt.Errorf("erase session: %w", err)
	}
	return nil
}
