package dto

// LikeStatusResponse is returned by the toggle and the per-user like
// lookup: the state after the operation plus the fresh like count.
type LikeStatusResponse struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}
