package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/studiobook/internal/client/models"
	"github.com/dmitrijs2005/studiobook/internal/client/services"
	"github.com/dmitrijs2005/studiobook/internal/logging"
)

var (
	ErrLoginRequired   = errors.New("login required")
	ErrIncomplete      = errors.New("studio, package, date and time slot are required")
	ErrUnknownPackage  = errors.New("unknown studio package")
	ErrInvalidDuration = errors.New("duration must be between 1 and 8 hours")
	ErrInvalidTimeSlot = errors.New("unknown time slot")
)

const (
	PathLoginRedirect = "/login?redirect=/booking"
	PathConfirmation  = "/booking/confirmation"
)

// DateLayout is how the booking day is sent to the backend.
const DateLayout = "2006-01-02"

// Form is what the user picked on the booking screen.
type Form struct {
	Studio          Studio
	Package         string
	Date            time.Time
	TimeSlot        string
	Hours           int
	SpecialRequests string
}

// Validate checks the form and returns the request it describes.
func (f Form) Validate() (models.BookingRequest, error) {
	if f.Studio == "" || f.Package == "" || f.Date.IsZero() || f.TimeSlot == "" {
		return models.BookingRequest{}, ErrIncomplete
	}
	if f.Hours < MinHours || f.Hours > MaxHours {
		return models.BookingRequest{}, ErrInvalidDuration
	}
	if _, ok := Lookup(f.Studio, f.Package); !ok {
		return models.BookingRequest{}, fmt.Errorf("%w: %s/%s", ErrUnknownPackage, f.Studio, f.Package)
	}
	if !ValidTimeSlot(f.TimeSlot) {
		return models.BookingRequest{}, fmt.Errorf("%w: %s", ErrInvalidTimeSlot, f.TimeSlot)
	}

	return models.BookingRequest{
		StudioType:      string(f.Studio),
		PackageType:     f.Package,
		BookingDate:     f.Date.Format(DateLayout),
		TimeSlot:        f.TimeSlot,
		Duration:        f.Hours,
		TotalPrice:      Price(f.Studio, f.Package, f.Hours),
		SpecialRequests: strings.TrimSpace(f.SpecialRequests),
	}, nil
}

// API is the part of the backend client bookings need.
type API interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
}

type Service struct {
	api     API
	session services.SessionReader
	nav     services.Navigator
	log     logging.Logger
}

func NewService(api API, session services.SessionReader, nav services.Navigator, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop{}
	}
	return &Service{api: api, session: session, nav: nav, log: log}
}

func (s *Service) navigate(path string) {
	if s.nav != nil {
		s.nav.Navigate(path)
	}
}

// Submit books a session for the signed-in user. Anonymous users are sent
// to the login page and get ErrLoginRequired.
func (s *Service) Submit(ctx context.Context, f Form) (*models.Booking, error) {
	if _, err := services.RequireAuthenticated(s.session); err != nil {
		s.navigate(PathLoginRedirect)
		return nil, ErrLoginRequired
	}

	req, err := f.Validate()
	if err != nil {
		return nil, err
	}

	b, err := s.api.CreateBooking(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "booking created", "booking_id", b.ID, "studio", req.StudioType, "total", req.TotalPrice)
	s.navigate(PathConfirmation)
	return b, nil
}

// Mine lists the bookings of the signed-in user.
func (s *Service) Mine(ctx context.Context) ([]models.Booking, error) {
	if _, err := services.RequireAuthenticated(s.session); err != nil {
		return nil, ErrLoginRequired
	}
	return s.api.ListBookings(ctx)
}
