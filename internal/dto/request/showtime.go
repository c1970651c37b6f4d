package request

// Timestamps travel as RFC3339 strings; parsing happens in the service so
// a malformed timestamp surfaces as a validation error, not a decode error.
type ShowtimeRequest struct {
	MovieID   int64   `json:"movie_id" validate:"required,gt=0"`
	Theater   string  `json:"theater" validate:"required,min=1,max=255"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// ShowtimeUpdateRequest carries only the fields present in the request;
// absent fields keep their stored values.
type ShowtimeUpdateRequest struct {
	MovieID   *int64   `json:"movie_id,omitempty" validate:"omitempty,gt=0"`
	Theater   *string  `json:"theater,omitempty" validate:"omitempty,min=1,max=255"`
	StartTime *string  `json:"start_time,omitempty"`
	EndTime   *string  `json:"end_time,omitempty"`
	Price     *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
}
