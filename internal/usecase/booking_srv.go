package usecase

import (
	"context"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"
	"movie-reservation/internal/dto/response"
	"movie-reservation/pkg/apperr"
	"movie-reservation/pkg/clock"
	"movie-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	ReserveSeat(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo  *repository.Repository
	clock clock.Clock
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, clk clock.Clock, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		clock: clk,
		log:   log.With(zap.String("service", "booking")),
	}
}

// ReserveSeat books one seat for one showtime. The whole check-then-insert
// runs in a single transaction holding the key lock for the
// (showtime, seat) pair, so among concurrent calls for the same pair
// exactly one commits and the rest observe a conflict.
func (s *bookingService) ReserveSeat(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request before touching the store
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reserve seat validation failed", zap.Any("errors", errs))
		return nil, apperr.Invalidf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, apperr.Invalidf("invalid user ID format %s", req.UserID)
	}

	var booking *entity.Booking

	err = s.repo.Tx.WithTx(ctx, func(txCtx context.Context) error {
		// Validate showtime exists within the transaction
		showtime, err := s.repo.Showtime.FindByID(txCtx, req.ShowtimeID)
		if err != nil {
			return err
		}
		if showtime == nil {
			return apperr.NotFoundf("showtime %d not found", req.ShowtimeID)
		}

		// Serialize against concurrent attempts on the same seat. The
		// lock is on the key, so it also covers the case where no
		// booking row exists yet.
		if err := s.repo.Booking.LockSeat(txCtx, req.ShowtimeID, req.SeatNumber); err != nil {
			return err
		}

		// Re-check under the lock
		existing, err := s.repo.Booking.FindByShowtimeAndSeat(txCtx, req.ShowtimeID, req.SeatNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.Conflictf("seat %d is already booked for showtime %d", req.SeatNumber, req.ShowtimeID)
		}

		booking = &entity.Booking{
			BaseSimple: entity.BaseSimple{
				CreatedAt: s.clock.Now(),
			},
			ShowtimeID: req.ShowtimeID,
			SeatNumber: req.SeatNumber,
			UserID:     userID,
		}

		return s.repo.Booking.Create(txCtx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("showtime_id", booking.ShowtimeID),
		zap.Int("seat_number", booking.SeatNumber),
		zap.String("user_id", booking.UserID.String()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}
