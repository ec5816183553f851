// Package server wires and runs the in-memory development backend: the
// repositories, the auth and booking services and the REST endpoint.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/studiobook/internal/logging"
	"github.com/dmitrijs2005/studiobook/internal/server/config"
	"github.com/dmitrijs2005/studiobook/internal/server/httpapi"
	"github.com/dmitrijs2005/studiobook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/studiobook/internal/server/services"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	authService    *services.AuthService
	bookingService *services.BookingService
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if !c.DevMode && c.SecretKey == "secretKey" {
		logger.Warn(ctx, "running with the default secret key")
	}

	rm := repomanager.NewMemoryRepositoryManager()
	as := services.NewAuthService(rm, services.NewLogMailer(logger), c)
	bs := services.NewBookingService(rm)

	if c.AdminEmail != "" {
		admin, err := as.SeedAdmin(ctx, c.AdminEmail, c.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("seed admin: %w", err)
		}
		logger.Info(ctx, "admin account ready", "email", admin.Email)
	}

	return &App{config: c, logger: logger, authService: as, bookingService: bs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "dev_mode", app.config.DevMode)

	app.initSignalHandler(cancelFunc)

	s := httpapi.NewServer(app.config.HTTPAddr, app.logger, app.authService, app.bookingService, app.config.DevMode)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	return nil
}
