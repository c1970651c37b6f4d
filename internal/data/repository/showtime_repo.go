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

type ShowtimeRepository interface {
	// LockTheater serializes all scheduling transactions for one theater
	// across the overlap-check-then-write span. Must be called inside WithTx.
	LockTheater(ctx context.Context, theater string) error
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id int64) (*entity.Showtime, error)
	// FindByTheater returns all showtimes in the theater, excluding
	// excludeID when it is non-zero.
	FindByTheater(ctx context.Context, theater string, excludeID int64) ([]*entity.Showtime, error)
	Update(ctx context.Context, showtime *entity.Showtime) error
	Delete(ctx context.Context, id int64) error
	ExistsByMovieID(ctx context.Context, movieID int64) (bool, error)
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

func (r *showtimeRepository) LockTheater(ctx context.Context, theater string) error {
	key := "theater:" + theater

	if err := acquireKeyLock(ctx, r.db, key); err != nil {
		r.log.Error("Failed to acquire theater lock",
			zap.Error(err),
			zap.String("theater", theater),
		)
		return apperr.Unavailable(fmt.Sprintf("lock theater %s", theater), err)
	}

	return nil
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, theater, start_time, end_time, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := queryRow(ctx, r.db, query,
		showtime.MovieID,
		showtime.Theater,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
		showtime.CreatedAt,
		showtime.UpdatedAt,
	).Scan(&showtime.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.NotFoundf("movie %d not found", showtime.MovieID)
		}

		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.Int64("movie_id", showtime.MovieID),
			zap.String("theater", showtime.Theater),
		)
		return apperr.Unavailable(fmt.Sprintf("create showtime for movie %d in %s", showtime.MovieID, showtime.Theater), err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id int64) (*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, theater, start_time, end_time, price, created_at, updated_at
		FROM showtimes
		WHERE id = $1
	`

	var showtime entity.Showtime
	err := queryRow(ctx, r.db, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.Theater,
		&showtime.StartTime,
		&showtime.EndTime,
		&showtime.Price,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return nil, apperr.Unavailable(fmt.Sprintf("find showtime by ID %d", id), err)
	}

	return &showtime, nil
}

func (r *showtimeRepository) FindByTheater(ctx context.Context, theater string, excludeID int64) ([]*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, theater, start_time, end_time, price, created_at, updated_at
		FROM showtimes
		WHERE theater = $1 AND id <> $2
		ORDER BY start_time
	`

	rows, err := queryRows(ctx, r.db, query, theater, excludeID)
	if err != nil {
		r.log.Error("Failed to find showtimes by theater",
			zap.Error(err),
			zap.String("theater", theater),
			zap.Int64("exclude_id", excludeID),
		)
		return nil, apperr.Unavailable(fmt.Sprintf("find showtimes in theater %s", theater), err)
	}
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		var showtime entity.Showtime
		err := rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.Theater,
			&showtime.StartTime,
			&showtime.EndTime,
			&showtime.Price,
			&showtime.CreatedAt,
			&showtime.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, apperr.Unavailable("scan showtime row", err)
		}
		showtimes = append(showtimes, &showtime)
	}

	return showtimes, nil
}

func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $2, theater = $3, start_time = $4, end_time = $5, price = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := exec(ctx, r.db, query,
		showtime.ID,
		showtime.MovieID,
		showtime.Theater,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
		showtime.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.NotFoundf("movie %d not found", showtime.MovieID)
		}

		r.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.Int64("showtime_id", showtime.ID),
		)
		return apperr.Unavailable(fmt.Sprintf("update showtime %d", showtime.ID), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFoundf("showtime %d not found", showtime.ID)
	}

	return nil
}

func (r *showtimeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM showtimes WHERE id = $1`

	result, err := exec(ctx, r.db, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.Conflictf("showtime %d has existing bookings", id)
		}

		r.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return apperr.Unavailable(fmt.Sprintf("delete showtime %d", id), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFoundf("showtime %d not found", id)
	}

	r.log.Info("Showtime deleted", zap.Int64("showtime_id", id))
	return nil
}

func (r *showtimeRepository) ExistsByMovieID(ctx context.Context, movieID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM showtimes WHERE movie_id = $1)`

	var exists bool
	err := queryRow(ctx, r.db, query, movieID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check showtimes by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return false, apperr.Unavailable(fmt.Sprintf("check showtimes for movie %d", movieID), err)
	}

	return exists, nil
}
