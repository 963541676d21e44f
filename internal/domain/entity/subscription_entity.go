package entity

import "time"

// Subscription is a newsletter signup. Email is unique.
type Subscription struct {
	ID           string
	Email        string
	SubscribedAt time.Time
}
