package request

type CreateBookingRequest struct {
	ShowtimeID int64  `json:"showtime_id" validate:"required,gt=0"`
	SeatNumber int    `json:"seat_number" validate:"required,gt=0"`
	UserID     string `json:"user_id" validate:"required,uuid"`
}
