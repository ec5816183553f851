package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/studiobook/internal/server/models"
	"github.com/dmitrijs2005/studiobook/internal/server/repositories/repomanager"
)

const (
	bookingDateLayout = "2006-01-02"
	minBookingHours   = 1
	maxBookingHours   = 8
)

// BookingInput is a reservation request as sent by the booking form.
type BookingInput struct {
	StudioType      string
	PackageType     string
	BookingDate     string
	TimeSlot        string
	Duration        int
	TotalPrice      int
	SpecialRequests string
}

type BookingService struct {
	repos repomanager.RepositoryManager
	now   func() time.Time
}

func NewBookingService(m repomanager.RepositoryManager) *BookingService {
	return &BookingService{repos: m, now: time.Now}
}

// Create stores a pending booking for userID. The price is taken as quoted
// by the client.
func (s *BookingService) Create(ctx context.Context, userID string, in BookingInput) (*models.Booking, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	b, err := s.repos.Bookings().Create(ctx, &models.Booking{
		UserID:          userID,
		StudioType:      in.StudioType,
		PackageType:     in.PackageType,
		BookingDate:     in.BookingDate,
		TimeSlot:        in.TimeSlot,
		Duration:        in.Duration,
		TotalPrice:      in.TotalPrice,
		SpecialRequests: strings.TrimSpace(in.SpecialRequests),
		Status:          models.BookingStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return b, nil
}

func (s *BookingService) List(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.repos.Bookings().ListByUser(ctx, userID)
}

func (s *BookingService) validate(in BookingInput) error {
	if in.StudioType == "" || in.PackageType == "" || in.BookingDate == "" || in.TimeSlot == "" {
		return invalid("Please fill all required fields")
	}
	if in.Duration < minBookingHours || in.Duration > maxBookingHours {
		return invalid(fmt.Sprintf("Duration must be between %d and %d hours", minBookingHours, maxBookingHours))
	}
	if in.TotalPrice <= 0 {
		return invalid("Invalid total price")
	}

	day, err := time.ParseInLocation(bookingDateLayout, in.BookingDate, time.UTC)
	if err != nil {
		return invalid("Invalid booking date")
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return invalid("Booking date cannot be in the past")
	}
	return nil
}
