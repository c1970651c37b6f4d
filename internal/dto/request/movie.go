package request

type MovieRequest struct {
	Title             string  `json:"title" validate:"required,min=1,max=255"`
	Genre             string  `json:"genre" validate:"required,oneof=Action Comedy Drama Horror Thriller Romance Sci-Fi Fantasy Adventure Animation Documentary Musical"`
	DurationInMinutes int     `json:"duration_in_minutes" validate:"required,gt=0"`
	Rating            float64 `json:"rating" validate:"gte=0,lte=10"`
	ReleaseYear       int     `json:"release_year" validate:"required,min=1888"`
}

type MovieUpdateRequest struct {
	Title             *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Genre             *string  `json:"genre,omitempty" validate:"omitempty,oneof=Action Comedy Drama Horror Thriller Romance Sci-Fi Fantasy Adventure Animation Documentary Musical"`
	DurationInMinutes *int     `json:"duration_in_minutes,omitempty" validate:"omitempty,gt=0"`
	Rating            *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	ReleaseYear       *int     `json:"release_year,omitempty" validate:"omitempty,min=1888"`
}
