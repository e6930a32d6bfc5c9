// Package store owns the durable user table: a single pretty-printed JSON
// document holding the entire collection. Every insert rewrites the whole
// document; there is no update or delete.
//
// The in-memory slice guarded by mu is the single authority. Disk is only
// touched under the write lock, via write-to-temp-then-rename, so readers
// never observe a half-written file and a failed write leaves the store in
// its pre-call state.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Sanmit243/KodJobs/internal/model"
)

var (
	// ErrStorageUnavailable wraps any failure to read or write the
	// backing document.
	ErrStorageUnavailable = errors.New("user storage unavailable")

	// ErrDuplicateUser is returned when a signup reuses an existing name.
	ErrDuplicateUser = errors.New("username already exists")

	// ErrAuthFailed covers both unknown identity and wrong password.
	// Callers must not distinguish the two cases.
	ErrAuthFailed = errors.New("invalid credentials")
)

// ValidationError reports a rejected signup or login payload.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Candidate is the signup input: all four fields are required.
type Candidate struct {
	Name        string `json:"name"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
}

// Store is a user table backed by one JSON file.
type Store struct {
	path string

	mu    sync.RWMutex
	users []model.User
}

// Open loads the document at path into memory. A missing file is treated
// as an empty collection (it is created on the first insert).
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorageUnavailable, path, err)
	}
	if err := json.Unmarshal(data, &s.users); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrStorageUnavailable, path, err)
	}
	return s, nil
}

// List returns a copy of the full collection.
func (s *Store) List() ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// Create validates the candidate, rejects duplicate names, derives age from
// the date of birth, assigns id = count+1 and persists the whole collection.
// On any failure the in-memory table and the file are left unchanged.
func (s *Store) Create(c Candidate) (model.User, error) {
	if c.Name == "" || c.Password == "" || c.Email == "" || c.DateOfBirth == "" {
		return model.User{}, &ValidationError{Msg: "all fields are required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Name == c.Name {
			return model.User{}, ErrDuplicateUser
		}
	}

	user := model.User{
		ID:          len(s.users) + 1,
		Name:        c.Name,
		Password:    c.Password,
		Email:       c.Email,
		DateOfBirth: c.DateOfBirth,
		Age:         CalculateAge(c.DateOfBirth, time.Now()),
	}

	next := append(append([]model.User(nil), s.users...), user)
	if err := s.flush(next); err != nil {
		return model.User{}, err
	}
	s.users = next
	return user, nil
}

// Authenticate scans for the first record whose name or email equals
// identity and whose password matches exactly. The single ErrAuthFailed
// outcome covers unknown identity and wrong password alike.
func (s *Store) Authenticate(identity, password string) (model.User, error) {
	if identity == "" || password == "" {
		return model.User{}, &ValidationError{Msg: "all fields are required"}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if (u.Name == identity || u.Email == identity) && u.Password == password {
			return u, nil
		}
	}
	return model.User{}, ErrAuthFailed
}

// flush rewrites the entire document atomically. Callers hold the write lock.
func (s *Store) flush(users []model.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrStorageUnavailable, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write: %v", ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close: %v", ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename: %v", ErrStorageUnavailable, err)
	}
	return nil
}
