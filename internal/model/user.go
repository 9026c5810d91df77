// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// UserID is the external, immutable identifier clients see; ID is the
// internal storage key and never leaves the API boundary.
type User struct {
	ID           string    `json:"-"`
	UserID       string    `json:"userId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// UserUpdate enumerates the mutable profile fields.
// Nil pointers mean "leave unchanged". UserID and the password hash
// are deliberately absent; neither is mutable through the profile API.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
}

// IsZero reports whether the update would change nothing.
func (u UserUpdate) IsZero() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil && u.Phone == nil
}
