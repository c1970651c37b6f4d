package entity

import (
	"time"
)

// Showtime is a scheduled screening of a movie in a theater. The interval
// [StartTime, EndTime) must not overlap any other showtime in the same
// theater.
type Showtime struct {
	Base
	MovieID   int64     `db:"movie_id"`
	Theater   string    `db:"theater"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Price     float64   `db:"price"`
}
