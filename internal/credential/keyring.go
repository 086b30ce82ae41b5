package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

// Keys under which the session is stored.
const (
	KeySessionToken = "session-token"
	KeyUserID       = "user-id"
)

// ErrNoSession is returned when no session token has been stored.
var ErrNoSession = errors.New("no stored session, run `dayboard login`")

// Session is the pair of values the backend expects on every
// authenticated request.
type Session struct {
	Token  string
	UserID string
}

// Store reads and writes credentials in a keyring.
type Store struct {
	ring keyring.Keyring
}

// NewStore wraps an already opened keyring.
func NewStore(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Open returns a Store backed by the system keyring, falling back to an
// encrypted file under fileDir when no OS keyring is available.
func Open(service, fileDir string) (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: service,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt(service + "-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return NewStore(ring), nil
}

// Get retrieves a credential value by key.
func (s *Store) Get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Set stores a credential value by key.
func (s *Store) Set(key string, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

// Delete removes a credential by key. A missing key is not an error.
func (s *Store) Delete(key string) error {
	err := s.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}

// Session returns the stored session. The user id is optional; a missing
// token yields ErrNoSession.
func (s *Store) Session() (Session, error) {
	token, err := s.Get(KeySessionToken)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return Session{}, ErrNoSession
		}
		return Session{}, err
	}
	if token == "" {
		return Session{}, ErrNoSession
	}

	userID, err := s.Get(KeyUserID)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return Session{}, err
	}
	return Session{Token: token, UserID: userID}, nil
}

// SaveSession stores both halves of the session.
func (s *Store) SaveSession(sess Session) error {
	if sess.Token == "" {
		return errors.New("session token must not be empty")
	}
	if err := s.Set(KeySessionToken, sess.Token); err != nil {
		return err
	}
	return s.Set(KeyUserID, sess.UserID)
}

// ClearSession removes the stored session.
func (s *Store) ClearSession() error {
	if err := s.Delete(KeySessionToken); err != nil {
		return err
	}
	return s.Delete(KeyUserID)
}
