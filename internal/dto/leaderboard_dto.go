package dto

import "github.com/google/uuid"

// LeaderboardEntry is one ranked user with the karma received inside the
// trailing 24-hour window. Users with no qualifying events never appear.
type LeaderboardEntry struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Karma24h int       `json:"karma_24h"`
}
