package entity

import "time"

// Event is a scheduled chapter activity.
type Event struct {
	ID          string
	Title       string
	Slug        string
	Description string
	Category    string
	StartTime   time.Time
	EndTime     time.Time
	Location    string
	ChapterID   string
	CreatedBy   string
	UpdatedAt   time.Time
}
