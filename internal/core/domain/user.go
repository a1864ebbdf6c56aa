package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrDisplayNameTooLong = errors.New("display name must be at most 50 characters long")
)

const (
	minPasswordRunes    = 8
	maxDisplayNameRunes = 50

	// Above the library default of 10: account creation is rare and login is
	// not latency-sensitive, so the extra hashing cost is acceptable.
	passwordHashCost = 12
)

// User is an account holder. DisplayName is what other members see next to
// shared streaks and week overviews; Email stays private to the account.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser builds an account with a normalized (trimmed, lowercased) email.
// An empty display name falls back to the part of the email before the @,
// so every account renders with some name from day one.
func NewUser(id, email, displayName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = email[:strings.IndexByte(email, '@')]
	}
	if utf8.RuneCountInString(displayName) > maxDisplayNameRunes {
		return nil, ErrDisplayNameTooLong
	}

	now := time.Now().UTC()
	return &User{
		ID:          id,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Rename changes the public display name. The email is immutable once the
// account exists.
func (u *User) Rename(displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil
	}
	if utf8.RuneCountInString(displayName) > maxDisplayNameRunes {
		return ErrDisplayNameTooLong
	}

	u.DisplayName = displayName
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) SetPassword(plain string) error {
	if utf8.RuneCountInString(plain) < minPasswordRunes {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordHashCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) CheckPassword(plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain))
}
