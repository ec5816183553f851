package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/studiobook/internal/server/services"
)

type bookingRequest struct {
	StudioType      string `json:"studioType"`
	PackageType     string `json:"packageType"`
	BookingDate     string `json:"bookingDate"`
	TimeSlot        string `json:"timeSlot"`
	Duration        int    `json:"duration"`
	TotalPrice      int    `json:"totalPrice"`
	SpecialRequests string `json:"specialRequests"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !decode(w, r, &req) {
		return
	}

	b, err := s.bookings.Create(r.Context(), userFrom(r.Context()).ID, services.BookingInput(req))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	list, err := s.bookings.List(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
