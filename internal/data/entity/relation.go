package entity

import "time"

// RelationKind identifies one of the three toggleable user-movie relations.
// The values double as the path segment used by the remote API.
type RelationKind string

const (
	KindWatched   RelationKind = "watched"
	KindLiked     RelationKind = "likes"
	KindWatchlist RelationKind = "watchlist"
)

func (k RelationKind) Valid() bool {
	switch k {
	case KindWatched, KindLiked, KindWatchlist:
		return true
	}
	return false
}

// MovieRef is the metadata snapshot sent with relation creates so the
// system of record can build a display-ready entry without a second lookup.
type MovieRef struct {
	MovieID     int64   `json:"movieId"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"posterPath,omitempty"`
	VoteAverage float64 `json:"voteAverage,omitempty"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
}

// Relation is the server-owned association between a user and a movie for
// one kind. The client never stores it durably; surfaces re-derive it from
// a point-in-time check plus their own optimistic override.
type Relation struct {
	UserID    int64        `json:"userId"`
	MovieID   int64        `json:"movieId"`
	Kind      RelationKind `json:"kind"`
	CreatedAt time.Time    `json:"createdAt"`
}
