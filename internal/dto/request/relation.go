package request

type ToggleRequest struct {
	Kind        string  `json:"kind" validate:"required,oneof=watched likes watchlist"`
	Title       string  `json:"title" validate:"required"`
	PosterPath  string  `json:"poster_path,omitempty"`
	VoteAverage float64 `json:"vote_average,omitempty" validate:"omitempty,gte=0,lte=10"`
	ReleaseDate string  `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
