package entity

import (
	"strings"
	"time"
)

// ProfileStatus is the closed set of membership statuses.
type ProfileStatus string

const (
	StatusActive   ProfileStatus = "ACTIVE"
	StatusInactive ProfileStatus = "INACTIVE"
	StatusPending  ProfileStatus = "PENDING"
)

// ParseProfileStatus upper-cases and validates a status string.
func ParseProfileStatus(s string) (ProfileStatus, bool) {
	switch ProfileStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, true
	case StatusInactive:
		return StatusInactive, true
	case StatusPending:
		return StatusPending, true
	default:
		return "", false
	}
}

// FAQ is a single question/answer pair on a member profile.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Profile carries the searchable, public-facing side of a User. Exactly one
// per user; created together with the user during registration.
//
// Skills, Certifications and FAQs are ordered sequences everywhere inside the
// process; any alternative wire shapes are converted at the HTTP boundary.
type Profile struct {
	ID             string
	UserID         string
	Title          string
	CompanyName    string
	Bio            string
	Industry       string
	Location       string
	Skills         []string
	Certifications []string
	FAQs           []FAQ
	Experience     string
	Status         ProfileStatus
	IsPublic       bool
	ImageURL       string // opaque reference, resolved by media storage
	Website        string
	LinkedIn       string
	Twitter        string
	Contact        string
	WhatsApp       string
	Slug           string // immutable once assigned
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
