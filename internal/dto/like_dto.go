package dto

// LikeResult is the outcome of a like call. Created reports whether a new
// like row was written; a duplicate or race-lost attempt still succeeds with
// Created=false.
type LikeResult struct {
	Liked     bool  `json:"liked"`
	Created   bool  `json:"created"`
	LikeCount int64 `json:"like_count"`
}

type UnlikeResult struct {
	Liked     bool  `json:"liked"`
	Deleted   bool  `json:"deleted"`
	LikeCount int64 `json:"like_count"`
}
