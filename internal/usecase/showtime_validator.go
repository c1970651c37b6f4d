package usecase

import (
	"context"
	"time"

	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/apperr"
	"movie-reservation/pkg/clock"
)

// ShowtimeValidator decides whether a proposed (theater, start, end)
// interval is legal against the existing showtimes in that theater. It
// performs no writes; callers that need the decision to hold across a
// write must span both with the theater lock.
type ShowtimeValidator struct {
	showtimes repository.ShowtimeRepository
	clock     clock.Clock
}

func NewShowtimeValidator(showtimes repository.ShowtimeRepository, clk clock.Clock) *ShowtimeValidator {
	return &ShowtimeValidator{
		showtimes: showtimes,
		clock:     clk,
	}
}

// Validate checks the scheduling rules in order; the first failing rule
// wins. excludeShowtimeID (when non-zero) keeps an update from conflicting
// with its own stored interval. Returns the normalized UTC pair.
func (v *ShowtimeValidator) Validate(ctx context.Context, theater string, startTime, endTime time.Time, excludeShowtimeID int64) (time.Time, time.Time, error) {
	start := startTime.UTC()
	end := endTime.UTC()

	if start.After(end) {
		return time.Time{}, time.Time{}, apperr.Invalidf("start time cannot be after end time")
	}

	if start.Before(v.clock.Now()) {
		return time.Time{}, time.Time{}, apperr.Invalidf("start time cannot be in the past")
	}

	if start.Equal(end) {
		return time.Time{}, time.Time{}, apperr.Invalidf("start time cannot be the same as end time")
	}

	existing, err := v.showtimes.FindByTheater(ctx, theater, excludeShowtimeID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	for _, other := range existing {
		if overlaps(start, end, other.StartTime, other.EndTime) {
			return time.Time{}, time.Time{}, apperr.Invalidf("overlapping showtimes for theater %s", theater)
		}
	}

	return start, end, nil
}

// overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// share at least one instant. Back-to-back intervals do not overlap.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
