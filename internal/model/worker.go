package model

import "time"

// Worker is a person on the rota. FeedURL is private and never serialized.
type Worker struct {
	ID          string    `db:"id"           json:"id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	FeedURL     string    `db:"ical_url"     json:"-"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
}
