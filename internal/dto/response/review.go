package response

import (
	"time"

	"moviepulse/internal/data/entity"
)

type ReviewResponse struct {
	ID              int64     `json:"id"`
	MovieID         int64     `json:"movie_id"`
	MovieTitle      string    `json:"movie_title,omitempty"`
	MoviePosterPath string    `json:"movie_poster_path,omitempty"`
	MovieYear       string    `json:"movie_year,omitempty"`
	Rating          float64   `json:"rating"`
	Content         string    `json:"content,omitempty"`
	ContainsSpoiler bool      `json:"contains_spoiler"`
	IsRewatch       bool      `json:"is_rewatch"`
	Tags            []string  `json:"tags,omitempty"`
	WatchedDate     string    `json:"watched_date,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewReviewResponse(r *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:              r.ID,
		MovieID:         r.MovieID,
		MovieTitle:      r.MovieTitle,
		MoviePosterPath: r.MoviePosterPath,
		MovieYear:       r.MovieYear,
		Rating:          r.Rating,
		Content:         r.Content,
		ContainsSpoiler: r.ContainsSpoiler,
		IsRewatch:       r.IsRewatch,
		Tags:            r.Tags,
		WatchedDate:     r.WatchedDate,
		CreatedAt:       r.CreatedAt,
	}
}

type ReviewLikeResponse struct {
	ReviewID  int64 `json:"review_id"`
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}
