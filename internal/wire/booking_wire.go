package wire

import (
	"movie-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// POST /api/bookings - reserve one seat for one showtime
	r.Post("/api/bookings", bookingHandler.ReserveSeat)
}
