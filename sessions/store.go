package sessions

import (
	"crypto/rand"
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	saltLength  = 16
	nonceLength = 24
	keyLength   = 32
)

// Store persists the session to a file, encrypted at rest. The file is a
// cache of the platform session, not a source of truth: an unreadable or
// undecryptable file simply means "not logged in".
type Store struct {
	path    string
	secret  []byte
	nowFunc func() time.Time
}

// StoreOption configures the Store.
type StoreOption func(*Store)

// WithSecret overrides the encryption passphrase. Without it the store
// derives one from the local machine and user identity, which protects
// the cache from casual reads; the 0600 file mode is the real guard.
func WithSecret(secret string) StoreOption {
	return func(s *Store) {
		s.secret = []byte(secret)
	}
}

// WithNowFunc sets the clock (primarily for testing).
func WithNowFunc(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowFunc = now
	}
}

// NewStore creates a session store backed by the given file path.
func NewStore(path string, options ...StoreOption) *Store {
	s := &Store{
		path:    path,
		secret:  []byte(machineSecret()),
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Load reads the persisted session at bootstrap. A missing file or one
// that fails to decrypt or decode returns (nil, nil): the session cache
// is disposable.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Store.Load] read session file")
	}

	plaintext, ok := s.open(data)
	if !ok {
		return nil, nil
	}

	var session Session
	if err := json.Unmarshal(plaintext, &session); err != nil {
		return nil, nil
	}
	return &session, nil
}

// Save writes the session, creating the parent directory when needed.
func (s *Store) Save(session *Session) error {
	if session == nil {
		return errors.New("[Store.Save] nil session")
	}

	plaintext, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "[Store.Save] marshal session")
	}

	sealed, err := s.seal(plaintext)
	if err != nil {
		return errors.Wrap(err, "[Store.Save] seal session")
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errors.Wrap(err, "[Store.Save] create directory")
		}
	}
	if err := os.WriteFile(s.path, sealed, 0o600); err != nil {
		return errors.Wrap(err, "[Store.Save] write session file")
	}
	return nil
}

// Clear removes the persisted session. Missing files are not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[Store.Clear] remove session file")
	}
	return nil
}

// seal encrypts plaintext as salt || nonce || box.
func (s *Store) seal(plaintext []byte) ([]byte, error) {
	var salt [saltLength]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, errors.Wrap(err, "salt")
	}
	var nonce [nonceLength]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, errors.Wrap(err, "nonce")
	}

	key, err := s.deriveKey(salt[:])
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, saltLength+nonceLength+len(plaintext)+secretbox.Overhead)
	out = append(out, salt[:]...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plaintext, &nonce, key), nil
}

func (s *Store) open(data []byte) ([]byte, bool) {
	if len(data) < saltLength+nonceLength+secretbox.Overhead {
		return nil, false
	}

	key, err := s.deriveKey(data[:saltLength])
	if err != nil {
		return nil, false
	}

	var nonce [nonceLength]byte
	copy(nonce[:], data[saltLength:saltLength+nonceLength])

	return secretbox.Open(nil, data[saltLength+nonceLength:], &nonce, key)
}

func (s *Store) deriveKey(salt []byte) (*[keyLength]byte, error) {
	raw, err := scrypt.Key(s.secret, salt, 1<<15, 8, 1, keyLength)
	if err != nil {
		return nil, errors.Wrap(err, "derive key")
	}
	var key [keyLength]byte
	copy(key[:], raw)
	return &key, nil
}

func machineSecret() string {
	hostname, _ := os.Hostname()
	username := ""
	if u, err := user.Current(); err == nil {
		username = u.Uid + ":" + u.Username
	}
	return "uidam-console:" + hostname + ":" + username
}
