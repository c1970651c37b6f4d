package usecase

import (
	"context"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"
	"movie-reservation/internal/dto/response"
	"movie-reservation/pkg/apperr"
	"movie-reservation/pkg/clock"
	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

type ShowtimeService interface {
	CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	GetShowtimeByID(ctx context.Context, showtimeID int64) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, showtimeID int64, req *request.ShowtimeUpdateRequest) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, showtimeID int64) error
}

type showtimeService struct {
	repo      *repository.Repository
	validator *ShowtimeValidator
	clock     clock.Clock
	log       *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, validator *ShowtimeValidator, clk clock.Clock, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo:      repo,
		validator: validator,
		clock:     clk,
		log:       log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create showtime validation failed", zap.Any("errors", errs))
		return nil, apperr.Invalidf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	startTime, err := parseTimestamp("start_time", req.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := parseTimestamp("end_time", req.EndTime)
	if err != nil {
		return nil, err
	}

	var showtime *entity.Showtime

	err = s.repo.Tx.WithTx(ctx, func(txCtx context.Context) error {
		// Resolve the referenced movie
		movie, err := s.repo.Movie.FindByID(txCtx, req.MovieID)
		if err != nil {
			return err
		}
		if movie == nil {
			return apperr.NotFoundf("movie %d not found", req.MovieID)
		}

		// The theater lock spans the overlap check and the insert, so two
		// concurrent creations cannot both pass against a stale snapshot.
		if err := s.repo.Showtime.LockTheater(txCtx, req.Theater); err != nil {
			return err
		}

		start, end, err := s.validator.Validate(txCtx, req.Theater, startTime, endTime, 0)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		showtime = &entity.Showtime{
			Base: entity.Base{
				CreatedAt: now,
				UpdatedAt: now,
			},
			MovieID:   req.MovieID,
			Theater:   req.Theater,
			StartTime: start,
			EndTime:   end,
			Price:     req.Price,
		}

		return s.repo.Showtime.Create(txCtx, showtime)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Showtime created",
		zap.Int64("showtime_id", showtime.ID),
		zap.Int64("movie_id", showtime.MovieID),
		zap.String("theater", showtime.Theater),
		zap.Time("start_time", showtime.StartTime),
		zap.Time("end_time", showtime.EndTime),
	)

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) GetShowtimeByID(ctx context.Context, showtimeID int64) (*response.ShowtimeResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, apperr.NotFoundf("showtime %d not found", showtimeID)
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, showtimeID int64, req *request.ShowtimeUpdateRequest) (*response.ShowtimeResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update showtime validation failed", zap.Any("errors", errs))
		return nil, apperr.Invalidf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var updated entity.Showtime

	err := s.repo.Tx.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.Showtime.FindByID(txCtx, showtimeID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFoundf("showtime %d not found", showtimeID)
		}

		// Apply only the fields present in the request
		updated = *existing

		if req.MovieID != nil && *req.MovieID != existing.MovieID {
			movie, err := s.repo.Movie.FindByID(txCtx, *req.MovieID)
			if err != nil {
				return err
			}
			if movie == nil {
				return apperr.NotFoundf("movie %d not found", *req.MovieID)
			}
			updated.MovieID = *req.MovieID
		}

		if req.Theater != nil {
			updated.Theater = *req.Theater
		}
		if req.StartTime != nil {
			start, err := parseTimestamp("start_time", *req.StartTime)
			if err != nil {
				return err
			}
			updated.StartTime = start
		}
		if req.EndTime != nil {
			end, err := parseTimestamp("end_time", *req.EndTime)
			if err != nil {
				return err
			}
			updated.EndTime = end
		}
		if req.Price != nil {
			updated.Price = *req.Price
		}

		// Re-validate only when the theater or the interval changed,
		// excluding the showtime itself so a no-op time update passes.
		if req.Theater != nil || req.StartTime != nil || req.EndTime != nil {
			if err := s.repo.Showtime.LockTheater(txCtx, updated.Theater); err != nil {
				return err
			}

			start, end, err := s.validator.Validate(txCtx, updated.Theater, updated.StartTime, updated.EndTime, showtimeID)
			if err != nil {
				return err
			}
			updated.StartTime = start
			updated.EndTime = end
		}

		updated.UpdatedAt = s.clock.Now()

		return s.repo.Showtime.Update(txCtx, &updated)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Showtime updated",
		zap.Int64("showtime_id", updated.ID),
		zap.String("theater", updated.Theater),
	)

	resp := response.ShowtimeToResponse(&updated)
	return &resp, nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, showtimeID int64) error {
	err := s.repo.Tx.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.Showtime.FindByID(txCtx, showtimeID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.NotFoundf("showtime %d not found", showtimeID)
		}

		// Deleting a showtime with dependent bookings is rejected
		hasBookings, err := s.repo.Booking.ExistsByShowtimeID(txCtx, showtimeID)
		if err != nil {
			return err
		}
		if hasBookings {
			return apperr.Conflictf("showtime %d has existing bookings", showtimeID)
		}

		return s.repo.Showtime.Delete(txCtx, showtimeID)
	})
	if err != nil {
		return err
	}

	s.log.Info("Showtime deleted", zap.Int64("showtime_id", showtimeID))
	return nil
}

// parseTimestamp parses an RFC3339 timestamp from a request field.
func parseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperr.Invalidf("invalid %s %q: must be RFC3339", field, value)
	}
	return t, nil
}
