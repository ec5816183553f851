// Package models defines the client-side data models shared by the HTTP
// client, the session store and the front-end.
package models

// Provider names the way an account authenticates.
type Provider string

const (
	ProviderEmail  Provider = "email"
	ProviderPhone  Provider = "phone"
	ProviderGoogle Provider = "google"
)

// Role gates access to protected surfaces. Only RoleAdmin passes the admin
// guard.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the session-visible projection of a backend account. The client
// holds a read-only cached copy for the lifetime of the session.
type User struct {
	// ID is the backend identifier of the account.
	ID string `json:"id"`

	// Email is empty for phone-only accounts.
	Email string `json:"email,omitempty"`

	// PhoneNumber is stored as "<country code> <digits>".
	PhoneNumber string `json:"phoneNumber,omitempty"`

	DisplayName string `json:"displayName"`

	// PhotoURL is the avatar, usually supplied by a federated provider.
	PhotoURL string `json:"photoURL,omitempty"`

	Provider Provider `json:"provider,omitempty"`

	// Role defaults to RoleUser when the backend omits it.
	Role Role `json:"role,omitempty"`
}

// IsAdmin reports whether u may enter the admin back-office.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Clone returns a copy so callers cannot mutate the store's cached user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Session pairs a bearer token with the user it authenticates.
type Session struct {
	Token string
	User  *User
}
