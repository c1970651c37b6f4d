package repository

import (
	"movie-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tx       TxRunner
	Movie    MovieRepository
	Showtime ShowtimeRepository
	Booking  BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:       NewTxRunner(db),
		Movie:    NewMovieRepository(db, log),
		Showtime: NewShowtimeRepository(db, log),
		Booking:  NewBookingRepository(db, log),
	}
}
