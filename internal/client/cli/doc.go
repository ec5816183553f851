// Package cli provides the interactive studio booking command-line client.
//
// It wires configuration, the local session database, the backend client,
// the session store and an interactive REPL. On start the saved session (if
// any) is restored; then the user runs commands.
//
// Key features:
//   - Signup with email OTP verification, Login / Logout
//   - WhoAmI and the admin gate
//   - Prices, Book and Bookings
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// Notifications are printed as "[ok]", "[info]", "[warn]" and "[error]"
// lines; the current route is shown in the prompt.
package cli
