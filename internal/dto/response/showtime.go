package response

import (
	"time"

	"movie-reservation/internal/data/entity"
)

type ShowtimeResponse struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movie_id"`
	Theater   string    `json:"theater"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Helper converter
func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:        showtime.ID,
		MovieID:   showtime.MovieID,
		Theater:   showtime.Theater,
		StartTime: showtime.StartTime,
		EndTime:   showtime.EndTime,
		Price:     showtime.Price,
		CreatedAt: showtime.CreatedAt,
		UpdatedAt: showtime.UpdatedAt,
	}
}
