package domain

import (
	"regexp"
	"strings"
	"time"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a validated, lower-cased email address. Identity comparisons are
// case-insensitive because construction always lower-cases.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	if !emailRegexp.MatchString(raw) {
		return Email{}, NewDomainError("invalid email format")
	}
	return Email{value: strings.ToLower(raw)}, nil
}

func (e Email) Value() string {
	return e.value
}

type User struct {
	id        string
	name      string
	email     Email
	createdAt time.Time
}

func NewUser(id, name, email string) (*User, error) {
	if len(name) < 2 {
		return nil, NewDomainError("name must have at least 2 characters")
	}
	e, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	return &User{id: id, name: name, email: e, createdAt: time.Now()}, nil
}

// ReconstituteUser rehydrates a User from persisted data.
func ReconstituteUser(id, name, email string, createdAt time.Time) (*User, error) {
	e, err := NewEmail(email)
	if err != nil {
		return nil, err
	}
	return &User{id: id, name: name, email: e, createdAt: createdAt}, nil
}

func (u *User) ID() string           { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email.Value() }
func (u *User) CreatedAt() time.Time { return u.createdAt }
