// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity of the service, representing one account.
// PasswordHash holds the bcrypt digest of the account password; the
// plaintext never survives past the hashing call.
type User struct {
	ID           uuid.UUID // Store-generated identifier, immutable for the record lifetime.
	FirstName    string
	LastName     string
	Email        string // Login identifier, unique across all users.
	PasswordHash string
	CreatedAt    time.Time // Set once by the store at creation.
	UpdatedAt    time.Time
}

// FullName joins the name parts for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}
