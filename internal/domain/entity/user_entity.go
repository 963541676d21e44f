package entity

import (
	"time"
)

// User is the identity aggregate for the directory.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID         string
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Role       Role
	ChapterID  string // empty when no chapter assigned
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullName joins first and last name for display purposes.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
