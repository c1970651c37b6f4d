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

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (title, genre, duration_in_minutes, rating, release_year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := queryRow(ctx, r.db, query,
		movie.Title,
		movie.Genre,
		movie.DurationInMinutes,
		movie.Rating,
		movie.ReleaseYear,
		movie.CreatedAt,
		movie.UpdatedAt,
	).Scan(&movie.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflictf("movie with title %q already exists", movie.Title)
		}

		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return apperr.Unavailable(fmt.Sprintf("create movie %q", movie.Title), err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `
		SELECT id, title, genre, duration_in_minutes, rating, release_year, created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	var movie entity.Movie
	err := queryRow(ctx, r.db, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genre,
		&movie.DurationInMinutes,
		&movie.Rating,
		&movie.ReleaseYear,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, apperr.Unavailable(fmt.Sprintf("find movie by ID %d", id), err)
	}

	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error) {
	query := `
		SELECT id, title, genre, duration_in_minutes, rating, release_year, created_at, updated_at
		FROM movies
		ORDER BY title
		LIMIT $1 OFFSET $2
	`

	rows, err := queryRows(ctx, r.db, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, apperr.Unavailable("find movies", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Genre,
			&movie.DurationInMinutes,
			&movie.Rating,
			&movie.ReleaseYear,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, apperr.Unavailable("scan movie row", err)
		}
		movies = append(movies, &movie)
	}

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM movies`

	var count int64
	err := queryRow(ctx, r.db, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, apperr.Unavailable("count movies", err)
	}

	return count, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, genre = $3, duration_in_minutes = $4, rating = $5, release_year = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := exec(ctx, r.db, query,
		movie.ID,
		movie.Title,
		movie.Genre,
		movie.DurationInMinutes,
		movie.Rating,
		movie.ReleaseYear,
		movie.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflictf("movie with title %q already exists", movie.Title)
		}

		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return apperr.Unavailable(fmt.Sprintf("update movie %d", movie.ID), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFoundf("movie %d not found", movie.ID)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := exec(ctx, r.db, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.Conflictf("movie %d has existing showtimes", id)
		}

		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return apperr.Unavailable(fmt.Sprintf("delete movie %d", id), err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFoundf("movie %d not found", id)
	}

	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}
