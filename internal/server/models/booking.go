package models

import "time"

const BookingStatusPending = "pending"

// Booking is a reserved studio session owned by UserID.
type Booking struct {
	ID              string    `json:"_id"`
	UserID          string    `json:"user"`
	StudioType      string    `json:"studioType"`
	PackageType     string    `json:"packageType"`
	BookingDate     string    `json:"bookingDate"`
	TimeSlot        string    `json:"timeSlot"`
	Duration        int       `json:"duration"`
	TotalPrice      int       `json:"totalPrice"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}
