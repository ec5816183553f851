package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/studiobook/internal/client/services"
	"github.com/dmitrijs2005/studiobook/internal/shared"
	"github.com/dmitrijs2005/studiobook/internal/validation"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Login prompts for email and password, validates both locally and opens a
// session. Admins land on /admin, everyone else on /.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if r := validation.ValidateEmail(email); !r.Valid {
		a.ui.Error(r.Message())
		return r.Err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	if r := validation.ValidateLoginPassword(string(password)); !r.Valid {
		a.ui.Error(r.Message())
		return r.Err
	}

	u, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		a.ui.Error(err.Error())
		return err
	}

	a.ui.Success("Welcome back, " + u.DisplayName + "!")
	a.ui.Navigate(services.LandingPath(u))
	return nil
}

// Logout ends the session locally even when the backend cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.ui.Info("Logged out")
	return nil
}

// WhoAmI prints the signed-in account.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := services.RequireAuthenticated(a.session)
	if err != nil {
		a.ui.Info("Not logged in")
		return err
	}
	a.println("Name:  " + u.DisplayName)
	a.println("Email: " + u.Email)
	if u.PhoneNumber != "" {
		a.println("Phone: " + u.PhoneNumber)
	}
	a.println("Role:  " + string(u.Role))
	return nil
}

// Admin opens the back-office. Only admins get in.
func (a *App) Admin(ctx context.Context) error {
	u, err := services.RequireAdmin(a.session)
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		a.ui.Error("Please log in first")
		a.ui.Navigate(services.PathLogin)
		return err
	case errors.Is(err, services.ErrForbidden):
		a.ui.Error("Admin access required")
		return err
	}
	a.ui.Navigate("/admin")
	a.ui.Info("Admin dashboard for " + u.Email)
	return nil
}
