package tokenstore

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketName = "auth"
	tokenKey   = "bearer_token"
)

// Store persists the single bearer credential across console runs.
// It holds exactly one key; absence of the key means anonymous.
type Store struct {
	db *bolt.DB
}

// Open initializes the Bolt file and ensures the bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Load returns the stored token, or empty string when none is stored.
func (s *Store) Load() (string, error) {
	if s == nil || s.db == nil {
		return "", bolt.ErrDatabaseNotOpen
	}
	var token string
	err := s.db.View(func(tx *bolt.Tx) error {
		if value := tx.Bucket([]byte(bucketName)).Get([]byte(tokenKey)); value != nil {
			token = string(value)
		}
		return nil
	})
	return token, err
}

// Save persists the token, replacing any previous one.
func (s *Store) Save(token string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(tokenKey), []byte(token))
	})
}

// Clear removes the stored token. Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(tokenKey))
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
