package usecase

import (
	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/clock"

	"go.uber.org/zap"
)

// Service aggregates the application services.
type Service struct {
	Movie    MovieService
	Showtime ShowtimeService
	Booking  BookingService
}

func NewService(repo *repository.Repository, clk clock.Clock, log *zap.Logger) *Service {
	validator := NewShowtimeValidator(repo.Showtime, clk)

	return &Service{
		Movie:    NewMovieService(repo, clk, log),
		Showtime: NewShowtimeService(repo, validator, clk, log),
		Booking:  NewBookingService(repo, clk, log),
	}
}
