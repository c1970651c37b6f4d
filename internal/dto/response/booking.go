package response

import (
	"time"

	"movie-reservation/internal/data/entity"
)

type BookingResponse struct {
	BookingID  int64     `json:"booking_id"`
	ShowtimeID int64     `json:"showtime_id"`
	SeatNumber int       `json:"seat_number"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Helper converter
func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		BookingID:  booking.ID,
		ShowtimeID: booking.ShowtimeID,
		SeatNumber: booking.SeatNumber,
		UserID:     booking.UserID.String(),
		CreatedAt:  booking.CreatedAt,
	}
}
