package response

import (
	"time"

	"movie-reservation/internal/data/entity"
)

type MovieResponse struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Genre             string    `json:"genre"`
	DurationInMinutes int       `json:"duration_in_minutes"`
	Rating            float64   `json:"rating"`
	ReleaseYear       int       `json:"release_year"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

// Helper converter
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:                movie.ID,
		Title:             movie.Title,
		Genre:             string(movie.Genre),
		DurationInMinutes: movie.DurationInMinutes,
		Rating:            movie.Rating,
		ReleaseYear:       movie.ReleaseYear,
		CreatedAt:         movie.CreatedAt,
		UpdatedAt:         movie.UpdatedAt,
	}
}
