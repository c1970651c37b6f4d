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

	"go.uber.org/zap"
)

type MovieService interface {
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	GetMovies(ctx context.Context, pagination request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID int64) error
}

type movieService struct {
	repo  *repository.Repository
	clock clock.Clock
	log   *zap.Logger
}

func NewMovieService(repo *repository.Repository, clk clock.Clock, log *zap.Logger) MovieService {
	return &movieService{
		repo:  repo,
		clock: clk,
		log:   log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, apperr.Invalidf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := s.checkReleaseYear(req.ReleaseYear); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:             req.Title,
		Genre:             entity.Genre(req.Genre),
		DurationInMinutes: req.DurationInMinutes,
		Rating:            req.Rating,
		ReleaseYear:       req.ReleaseYear,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) GetMovies(ctx context.Context, pagination request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Movie.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]response.MovieResponse, 0, len(movies))
	for _, movie := range movies {
		items = append(items, response.MovieToResponse(movie))
	}

	return response.NewPaginatedResponse(items, pagination.Page, pagination.Limit(), total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, apperr.NotFoundf("movie %d not found", movieID)
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, apperr.Invalidf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.ReleaseYear != nil {
		if err := s.checkReleaseYear(*req.ReleaseYear); err != nil {
			return nil, err
		}
	}

	existing, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFoundf("movie %d not found", movieID)
	}

	// Apply only the fields present in the request
	updated := *existing
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Genre != nil {
		updated.Genre = entity.Genre(*req.Genre)
	}
	if req.DurationInMinutes != nil {
		updated.DurationInMinutes = *req.DurationInMinutes
	}
	if req.Rating != nil {
		updated.Rating = *req.Rating
	}
	if req.ReleaseYear != nil {
		updated.ReleaseYear = *req.ReleaseYear
	}
	updated.UpdatedAt = s.clock.Now()

	if err := s.repo.Movie.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.log.Info("Movie updated",
		zap.Int64("movie_id", updated.ID),
		zap.String("title", updated.Title),
	)

	resp := response.MovieToResponse(&updated)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID int64) error {
	err := s.repo.Tx.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.Movie.FindByID(txCtx, movieID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFoundf("movie %d not found", movieID)
		}

		// Deleting a movie with scheduled showtimes is rejected
		hasShowtimes, err := s.repo.Showtime.ExistsByMovieID(txCtx, movieID)
		if err != nil {
			return err
		}
		if hasShowtimes {
			return apperr.Conflictf("movie %d has existing showtimes", movieID)
		}

		return s.repo.Movie.Delete(txCtx, movieID)
	})
	if err != nil {
		return err
	}

	s.log.Info("Movie deleted", zap.Int64("movie_id", movieID))
	return nil
}

// checkReleaseYear enforces the upper bound, which depends on the current
// year and so cannot live in a static validate tag.
func (s *movieService) checkReleaseYear(year int) error {
	if year > s.clock.Now().Year() {
		return apperr.Invalidf("release year %d cannot be in the future", year)
	}
	return nil
}
