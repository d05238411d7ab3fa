package entity

import "time"

// Review is the projection returned by the remote API. LikeCount and Liked
// describe the viewer's stance toward the review, not the reviewed movie.
type Review struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	MovieID         int64     `json:"movieId"`
	Rating          float64   `json:"rating"`
	Content         string    `json:"content"`
	ContainsSpoiler bool      `json:"containsSpoiler"`
	IsRewatch       bool      `json:"isRewatch"`
	Tags            []string  `json:"tags"`
	WatchedDate     string    `json:"watchedDate,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`

	LikeCount       int64  `json:"likesCount"`
	Liked           bool   `json:"isLiked"`
	MovieTitle      string `json:"movieTitle,omitempty"`
	MoviePosterPath string `json:"moviePosterUrl,omitempty"`
	MovieYear       string `json:"movieYear,omitempty"`
}

// ReviewDraft is the create payload. The movie snapshot rides along for the
// same reason it does on relation creates.
type ReviewDraft struct {
	MovieID         int64    `json:"movieId"`
	Rating          float64  `json:"rating"`
	Content         string   `json:"content,omitempty"`
	ContainsSpoiler bool     `json:"containsSpoiler"`
	IsRewatch       bool     `json:"isRewatch"`
	Tags            []string `json:"tags,omitempty"`
	WatchedDate     string   `json:"watchedDate,omitempty"`

	MovieTitle      string `json:"movieTitle"`
	MoviePosterPath string `json:"moviePosterUrl,omitempty"`
	MovieYear       string `json:"movieYear,omitempty"`
}
