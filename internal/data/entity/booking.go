package entity

import (
	"github.com/google/uuid"
)

// Booking reserves one seat for one showtime by one user. The pair
// (ShowtimeID, SeatNumber) is unique across all bookings; a booking is
// immutable once created.
type Booking struct {
	BaseSimple
	ShowtimeID int64     `db:"showtime_id"`
	SeatNumber int       `db:"seat_number"`
	UserID     uuid.UUID `db:"user_id"`
}
