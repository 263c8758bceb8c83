package models

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleStaff UserRole = "staff"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleUser, UserRoleStaff, UserRoleAdmin:
		return true
	}
	return false
}

// Address holds the free-form location fields attached to a user profile.
type Address struct {
	Region   string
	Province string
	City     string
	Barangay string
	Street   string
	Country  string
}

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Name         string
	Role         UserRole
	IsActive     bool
	AvatarURL    *string
	Address      Address
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is one active login. The bearer token itself is never stored;
// the token carries the session ID and the record is looked up by it.
type Session struct {
	ID           string
	UserID       string
	Device       string
	Browser      string
	IPAddress    string
	Location     string
	LastActiveAt time.Time
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// PasswordReset is a single-use reset token. Used flips exactly once, in
// the same transaction as the password update.
type PasswordReset struct {
	ID        string
	Email     string
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
