package response

type RelationStateResponse struct {
	MovieID   int64 `json:"movie_id"`
	Watched   bool  `json:"watched"`
	Liked     bool  `json:"liked"`
	Watchlist bool  `json:"watchlist"`
}

type ToggleResponse struct {
	MovieID int64  `json:"movie_id"`
	Kind    string `json:"kind"`
	Active  bool   `json:"active"`
}
