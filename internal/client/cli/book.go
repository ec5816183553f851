package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/studiobook/internal/client/booking"
)

// Prices prints the rate card.
func (a *App) Prices(ctx context.Context) error {
	for _, s := range booking.Studios {
		for _, p := range booking.Packages(s) {
			a.println(fmt.Sprintf("%-8s %-8s %-16s ₹%d/hr", s, p.Value, p.Label, p.Rate))
		}
	}
	a.println("Time slots: " + strings.Join(booking.TimeSlots, ", "))
	return nil
}

// Book collects a booking form and submits it.
func (a *App) Book(ctx context.Context) error {
	if !a.isLoggedIn() {
		_, err := a.bookings.Submit(ctx, booking.Form{})
		a.ui.Error("Please log in to book a session")
		return err
	}

	f, err := a.readBookingForm()
	if err != nil {
		a.ui.Error(err.Error())
		return err
	}

	if price := booking.Price(f.Studio, f.Package, f.Hours); price > 0 {
		a.println(fmt.Sprintf("Total: ₹%d (%d h × ₹%d/hr)", price, f.Hours, price/f.Hours))
	}

	b, err := a.bookings.Submit(ctx, f)
	if err != nil {
		a.ui.Error(err.Error())
		return err
	}
	a.ui.Success(fmt.Sprintf("Booking %s received (%s %s, %s)", b.ID, b.BookingDate, b.TimeSlot, b.Status))
	return nil
}

func (a *App) readBookingForm() (booking.Form, error) {
	var f booking.Form

	studio, err := getSimpleText(a.reader, "Studio (podcast, video, full)", a.out)
	if err != nil {
		return f, err
	}
	f.Studio = booking.Studio(strings.ToLower(studio))

	var names []string
	for _, p := range booking.Packages(f.Studio) {
		names = append(names, p.Value)
	}
	if len(names) == 0 {
		return f, fmt.Errorf("%w: %s", booking.ErrUnknownPackage, studio)
	}
	if f.Package, err = getSimpleText(a.reader, "Package ("+strings.Join(names, ", ")+")", a.out); err != nil {
		return f, err
	}

	date, err := getSimpleText(a.reader, "Date (YYYY-MM-DD)", a.out)
	if err != nil {
		return f, err
	}
	if f.Date, err = time.Parse(booking.DateLayout, date); err != nil {
		return f, errors.New("Please enter the date as YYYY-MM-DD")
	}

	if f.TimeSlot, err = getSimpleText(a.reader, "Time slot ("+strings.Join(booking.TimeSlots, ", ")+")", a.out); err != nil {
		return f, err
	}

	hours, err := getSimpleText(a.reader, fmt.Sprintf("Duration in hours (%d-%d) [1]", booking.MinHours, booking.MaxHours), a.out)
	if err != nil {
		return f, err
	}
	f.Hours = 1
	if hours != "" {
		if f.Hours, err = strconv.Atoi(hours); err != nil {
			return f, booking.ErrInvalidDuration
		}
	}

	if f.SpecialRequests, err = getMultiline(a.reader, "Special requests (optional)", a.out); err != nil {
		return f, err
	}
	return f, nil
}

// Bookings lists the bookings of the signed-in user.
func (a *App) Bookings(ctx context.Context) error {
	list, err := a.bookings.Mine(ctx)
	if err != nil {
		a.ui.Error(err.Error())
		return err
	}
	if len(list) == 0 {
		a.println("No bookings yet")
		return nil
	}
	for _, b := range list {
		a.println(fmt.Sprintf("%s  %s %s  %s/%s  %dh  ₹%d  %s",
			b.ID, b.BookingDate, b.TimeSlot, b.StudioType, b.PackageType, b.Duration, b.TotalPrice, b.Status))
	}
	return nil
}
