package entity

import "time"

// Chapter is a location/organizational grouping referenced by users,
// articles and events. The "location" search facet compares against chapter
// identity, not chapter name.
type Chapter struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
