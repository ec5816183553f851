// Package models defines the records kept by the development backend.
package models

import "time"

const (
	ProviderEmail  = "email"
	ProviderPhone  = "phone"
	ProviderGoogle = "google"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account. Email is stored lower-cased; PasswordHash is a bcrypt
// hash and empty for federated accounts.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email,omitempty"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	DisplayName  string    `json:"displayName"`
	PhotoURL     string    `json:"photoURL,omitempty"`
	Provider     string    `json:"provider"`
	Role         string    `json:"role"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
