package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/dto/request"
	"movie-reservation/pkg/apperr"
	"movie-reservation/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMovieService(store *fakeStore, now time.Time) MovieService {
	return NewMovieService(newFakeRepository(store), clock.NewFixed(now), zap.NewNop())
}

func TestCreateMovie(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := newTestMovieService(store, now)

	resp, err := svc.CreateMovie(context.Background(), &request.MovieRequest{
		Title:             "Parasite",
		Genre:             "Thriller",
		DurationInMinutes: 132,
		Rating:            8.5,
		ReleaseYear:       2019,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Parasite", resp.Title)
	assert.Equal(t, "Thriller", resp.Genre)
	assert.Equal(t, 132, resp.DurationInMinutes)
	assert.Equal(t, 8.5, resp.Rating)
	assert.Equal(t, 2019, resp.ReleaseYear)
}

func TestCreateMovieDuplicateTitle(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := newTestMovieService(store, now)

	req := request.MovieRequest{
		Title:             "Parasite",
		Genre:             "Thriller",
		DurationInMinutes: 132,
		Rating:            8.5,
		ReleaseYear:       2019,
	}

	_, err := svc.CreateMovie(context.Background(), &req)
	require.NoError(t, err)

	_, err = svc.CreateMovie(context.Background(), &req)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.ErrorContains(t, err, "already exists")
}

func TestCreateMovieRejectsInvalid(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		req  request.MovieRequest
	}{
		{"missing title", request.MovieRequest{Genre: "Drama", DurationInMinutes: 90, Rating: 5, ReleaseYear: 2000}},
		{"unknown genre", request.MovieRequest{Title: "X", Genre: "Opera", DurationInMinutes: 90, Rating: 5, ReleaseYear: 2000}},
		{"zero duration", request.MovieRequest{Title: "X", Genre: "Drama", Rating: 5, ReleaseYear: 2000}},
		{"rating above scale", request.MovieRequest{Title: "X", Genre: "Drama", DurationInMinutes: 90, Rating: 10.5, ReleaseYear: 2000}},
		{"release before first film", request.MovieRequest{Title: "X", Genre: "Drama", DurationInMinutes: 90, Rating: 5, ReleaseYear: 1800}},
		{"release in the future", request.MovieRequest{Title: "X", Genre: "Drama", DurationInMinutes: 90, Rating: 5, ReleaseYear: 2027}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			svc := newTestMovieService(store, now)

			_, err := svc.CreateMovie(context.Background(), &tc.req)
			require.Error(t, err)
			assert.True(t, apperr.IsInvalid(err))
			assert.Equal(t, 0, store.dataCallCount())
		})
	}
}

func TestGetMovies(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	for i := 1; i <= 5; i++ {
		seedMovie(store, fmt.Sprintf("Movie %d", i))
	}
	svc := newTestMovieService(store, now)

	page, err := svc.GetMovies(context.Background(), request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(5), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, "Movie 1", page.Data[0].Title)

	page, err = svc.GetMovies(context.Background(), request.PaginatedRequest{Page: 3, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, "Movie 5", page.Data[0].Title)
}

func TestGetMovieByID(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	movieID := seedMovie(store, "Parasite")
	svc := newTestMovieService(store, now)

	resp, err := svc.GetMovieByID(context.Background(), movieID)
	require.NoError(t, err)
	assert.Equal(t, "Parasite", resp.Title)

	_, err = svc.GetMovieByID(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateMovie(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	movieID := seedMovie(store, "Parasite")
	svc := newTestMovieService(store, now)

	rating := 9.0
	resp, err := svc.UpdateMovie(context.Background(), movieID, &request.MovieUpdateRequest{
		Rating: &rating,
	})
	require.NoError(t, err)

	// Untouched fields keep their stored values
	assert.Equal(t, "Parasite", resp.Title)
	assert.Equal(t, 9.0, resp.Rating)
	assert.Equal(t, now, resp.UpdatedAt)
}

func TestUpdateMovieFutureReleaseYear(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	movieID := seedMovie(store, "Parasite")
	svc := newTestMovieService(store, now)

	year := 2030
	_, err := svc.UpdateMovie(context.Background(), movieID, &request.MovieUpdateRequest{
		ReleaseYear: &year,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsInvalid(err))
	assert.ErrorContains(t, err, "future")
}

func TestUpdateMovieNotFound(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := newTestMovieService(store, now)

	rating := 9.0
	_, err := svc.UpdateMovie(context.Background(), 999, &request.MovieUpdateRequest{Rating: &rating})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteMovie(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	movieID := seedMovie(store, "Parasite")
	svc := newTestMovieService(store, now)

	require.NoError(t, svc.DeleteMovie(context.Background(), movieID))

	_, err := svc.GetMovieByID(context.Background(), movieID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteMovieWithShowtimes(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	movieID := seedMovie(store, "Parasite")
	store.addShowtime(entity.Showtime{
		MovieID:   movieID,
		Theater:   "Theater 1",
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(3 * time.Hour),
		Price:     10,
	})
	svc := newTestMovieService(store, now)

	err := svc.DeleteMovie(context.Background(), movieID)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.ErrorContains(t, err, "existing showtimes")
}

func TestDeleteMovieNotFound(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := newTestMovieService(store, now)

	err := svc.DeleteMovie(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
