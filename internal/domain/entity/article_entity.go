package entity

import "time"

// Article is a published piece of content tied to an author and a chapter.
// Slug is assigned once at creation and never recomputed, so external links
// survive title edits.
type Article struct {
	ID          string
	Title       string
	Slug        string
	ContentBody string
	VideoURL    string
	Tags        []string
	Category    string
	Views       int64
	ReadTime    int // estimated minutes
	AuthorID    string
	ChapterID   string
	CreatedAt   time.Time
}
