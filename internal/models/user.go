package models

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// User represents an account known to the session service. Only the bcrypt
// hash of the password is retained.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash []byte `json:"-"`
}

var (
	ErrUserExists         = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Directory is an in-memory credential registry. It is deliberately not a
// database: the service stores nothing across restarts.
type Directory struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		users: make(map[string]User),
	}
}

// Register hashes the password with bcrypt and stores the user.
func (d *Directory) Register(id, username, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.users[username]; ok {
		return User{}, ErrUserExists
	}
	user := User{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
	}
	d.users[username] = user
	return user, nil
}

// Authenticate checks a username/password pair against the stored hash.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (d *Directory) Authenticate(username, password string) (User, error) {
	d.mu.RLock()
	user, ok := d.users[username]
	d.mu.RUnlock()

	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}
