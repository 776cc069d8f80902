package model

import "time"

type Course struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	DurationWeeks int       `json:"duration_weeks"`
	Fee           int       `json:"fee"` // in the smallest currency unit
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}
