package request

import "moviepulse/internal/data/entity"

type LogReviewRequest struct {
	Movie           entity.MovieRef `json:"movie" validate:"required"`
	Rating          float64         `json:"rating" validate:"required,gt=0,lte=5"`
	Content         string          `json:"content,omitempty" validate:"max=10000"`
	ContainsSpoiler bool            `json:"contains_spoiler"`
	IsRewatch       bool            `json:"is_rewatch"`
	Watched         bool            `json:"watched"`
	Liked           bool            `json:"liked"`
	Tags            []string        `json:"tags,omitempty" validate:"dive,max=64"`
	WatchedDate     string          `json:"watched_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LogAnother      bool            `json:"log_another"`
}

// SeedLikeRequest primes a review's like state from the rendered projection
// before the first toggle.
type SeedLikeRequest struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count" validate:"gte=0"`
}
