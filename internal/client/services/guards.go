package services

import "github.com/dmitrijs2005/studiobook/internal/client/models"

// SessionReader is the read side of SessionStore.
type SessionReader interface {
	User() *models.User
}

// RequireAuthenticated admits any signed-in user.
func RequireAuthenticated(s SessionReader) (*models.User, error) {
	u := s.User()
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	return u, nil
}

// RequireAdmin admits only users whose role is admin.
func RequireAdmin(s SessionReader) (*models.User, error) {
	u, err := RequireAuthenticated(s)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, ErrForbidden
	}
	return u, nil
}

// LandingPath is where a user goes right after login.
func LandingPath(u *models.User) string {
	if u.IsAdmin() {
		return "/admin"
	}
	return "/"
}
