package repository

import (
	"context"
	"fmt"

	"movie-reservation/internal/data/entity"
	"movie-reservation/pkg/apperr"
	"movie-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// LockSeat serializes all transactions contending for the same
	// (showtimeID, seatNumber) pair. Must be called inside WithTx.
	LockSeat(ctx context.Context, showtimeID int64, seatNumber int) error
	FindByShowtimeAndSeat(ctx context.Context, showtimeID int64, seatNumber int) (*entity.Booking, error)
	Create(ctx context.Context, booking *entity.Booking) error
	ExistsByShowtimeID(ctx context.Context, showtimeID int64) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) LockSeat(ctx context.Context, showtimeID int64, seatNumber int) error {
	key := fmt.Sprintf("booking:%d:%d", showtimeID, seatNumber)

	if err := acquireKeyLock(ctx, r.db, key); err != nil {
		r.log.Error("Failed to acquire seat lock",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
			zap.Int("seat_number", seatNumber),
		)
		return apperr.Unavailable(fmt.Sprintf("lock seat %d for showtime %d", seatNumber, showtimeID), err)
	}

	return nil
}

func (r *bookingRepository) FindByShowtimeAndSeat(ctx context.Context, showtimeID int64, seatNumber int) (*entity.Booking, error) {
	query := `
		SELECT id, showtime_id, seat_number, user_id, created_at
		FROM bookings
		WHERE showtime_id = $1 AND seat_number = $2
	`

	var booking entity.Booking
	err := queryRow(ctx, r.db, query, showtimeID, seatNumber).Scan(
		&booking.ID,
		&booking.ShowtimeID,
		&booking.SeatNumber,
		&booking.UserID,
		&booking.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by showtime and seat",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
			zap.Int("seat_number", seatNumber),
		)
		return nil, apperr.Unavailable(fmt.Sprintf("find booking for showtime %d seat %d", showtimeID, seatNumber), err)
	}

	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (showtime_id, seat_number, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := queryRow(ctx, r.db, query,
		booking.ShowtimeID,
		booking.SeatNumber,
		booking.UserID,
		booking.CreatedAt,
	).Scan(&booking.ID)

	if err != nil {
		// The unique index on (showtime_id, seat_number) is the durable
		// backstop behind the key lock.
		if isUniqueViolation(err) {
			return apperr.Conflictf("seat %d is already booked for showtime %d", booking.SeatNumber, booking.ShowtimeID)
		}

		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.Int64("showtime_id", booking.ShowtimeID),
			zap.Int("seat_number", booking.SeatNumber),
			zap.String("user_id", booking.UserID.String()),
		)
		return apperr.Unavailable(fmt.Sprintf("create booking for showtime %d seat %d", booking.ShowtimeID, booking.SeatNumber), err)
	}

	return nil
}

func (r *bookingRepository) ExistsByShowtimeID(ctx context.Context, showtimeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE showtime_id = $1)`

	var exists bool
	err := queryRow(ctx, r.db, query, showtimeID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check bookings by showtime ID",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
		)
		return false, apperr.Unavailable(fmt.Sprintf("check bookings for showtime %d", showtimeID), err)
	}

	return exists, nil
}
