package store

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"savoria/db"
	"savoria/models"
)

// UserStore keeps mock signup records in the users blob. Credentials are
// compared in plain text; real authentication is an explicit non-goal.
type UserStore struct {
	mu       sync.Mutex
	blobs    db.BlobStore
	notifier *Notifier
}

func NewUserStore(blobs db.BlobStore, notifier *Notifier) *UserStore {
	return &UserStore{blobs: blobs, notifier: notifier}
}

// Signup appends a new user record, rejecting duplicate emails.
func (s *UserStore) Signup(ctx context.Context, user models.User) (models.User, error) {
	if err := validate.Struct(user); err != nil {
		return models.User{}, &ValidationError{Field: "user", Reason: err.Error()}
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = timestamp()

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, existing := range users {
		if existing.Email == user.Email {
			return models.User{}, ErrEmailTaken
		}
	}
	users = append(users, user)

	raw, err := json.Marshal(users)
	if err != nil {
		return models.User{}, &StorageError{Op: "marshal", Key: db.UsersKey, Err: err}
	}
	if err := s.blobs.Set(ctx, db.UsersKey, raw); err != nil {
		return models.User{}, &StorageError{Op: "set", Key: db.UsersKey, Err: err}
	}
	return user, nil
}

// Authenticate scans the users blob for a matching email and password.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return models.User{}, false, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range users {
		if user.Email == email && user.Password == password {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

func (s *UserStore) load(ctx context.Context) ([]models.User, error) {
	raw, err := s.blobs.Get(ctx, db.UsersKey)
	if err == db.ErrKeyNotFound {
		return []models.User{}, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "get", Key: db.UsersKey, Err: err}
	}

	var users []models.User
	if jsonErr := json.Unmarshal(raw, &users); jsonErr != nil {
		log.Printf("Corrupt users blob, starting empty: %v", jsonErr)
		return []models.User{}, nil
	}
	return users, nil
}
