// Package users stores and manages user accounts: registration, login,
// lookup, update, and removal. Credentials are held only as a tagged
// PBKDF2 hash plus salt; plaintext passwords never reach the store.
package users

import "time"

// User is a stored user account.
//
// Username and Email carry unique indexes so concurrent registrations of
// the same value cannot both land; the validation pipeline's uniqueness
// check is advisory, the index is authoritative.
type User struct {
	ID       string `json:"_id" gorm:"primaryKey;size:36"`
	Username string `json:"username" gorm:"uniqueIndex;size:20;not null"`
	Email    string `json:"email" gorm:"uniqueIndex;size:150;not null"`

	// PasswordHash and PasswordSalt never serialize to clients.
	PasswordHash string `json:"-" gorm:"not null"`
	PasswordSalt string `json:"-" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
