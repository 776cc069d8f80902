package model

import "time"

// ActivityLog records one mutating action for audit purposes. Entries are
// append-only and purged after a retention window by the background sweeper.
type ActivityLog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
