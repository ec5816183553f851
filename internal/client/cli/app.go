package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/studiobook/internal/client/booking"
	"github.com/dmitrijs2005/studiobook/internal/client/client"
	"github.com/dmitrijs2005/studiobook/internal/client/config"
	"github.com/dmitrijs2005/studiobook/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/studiobook/internal/client/services"
	"github.com/dmitrijs2005/studiobook/internal/logging"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	api      *client.HTTPClient
	session  *services.SessionStore
	bookings *booking.Service
	ui       *terminalUI
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the session database and wires the backend client, the
// session store and the booking service.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	return newApp(c, db, bufio.NewReader(os.Stdin), os.Stdout, log), nil
}

func newApp(c *config.Config, db *sql.DB, reader *bufio.Reader, out io.Writer, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop{}
	}
	store := tokens.NewStore(db)
	api := client.NewHTTPClient(c.APIBaseURL, nil, client.WithTimeout(c.RequestTimeout))
	ui := newTerminalUI(out)
	session := services.NewSessionStore(api, store, ui, log.With("component", "session"))
	api.UseTokens(session.TokenSource())

	return &App{
		config:   c,
		db:       db,
		api:      api,
		session:  session,
		bookings: booking.NewService(api, session, ui, log.With("component", "booking")),
		ui:       ui,
		log:      log,
		reader:   reader,
		out:      out,
	}
}

// Run restores a saved session and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	a.session.Bootstrap(ctx)
	a.println("Welcome to the studio booking CLI (type 'help' for commands)")
	if u := a.session.User(); u != nil {
		a.println("Signed in as " + u.DisplayName + " <" + u.Email + ">")
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) isLoggedIn() bool {
	return a.session.User() != nil
}

func (a *App) status() string {
	s := a.ui.Route()
	if u := a.session.User(); u != nil {
		s = u.Email + " " + s
	}
	return "(" + s + ")"
}
