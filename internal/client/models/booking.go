package models

// BookingRequest is the body of POST /bookings.
type BookingRequest struct {
	StudioType      string `json:"studioType"`
	PackageType     string `json:"packageType"`
	BookingDate     string `json:"bookingDate"` // YYYY-MM-DD
	TimeSlot        string `json:"timeSlot"`
	Duration        int    `json:"duration"` // hours
	TotalPrice      int    `json:"totalPrice"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// Booking is a studio session as stored by the backend.
type Booking struct {
	BookingRequest
	ID        string `json:"_id"`
	User      string `json:"user,omitempty"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
