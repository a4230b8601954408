package models

import (
	"time"

	"github.com/google/uuid"
)

// Link is a destination URL. A link can be coupled to several keywords.
type Link struct {
	ID        uuid.UUID `json:"ID"`
	URL       string    `json:"URL"`
	Title     string    `json:"Title"`
	Clicks    int64     `json:"Clicks"`
	CreatedAt time.Time `json:"Ctime"`
}

// DisplayTitle returns the title, falling back to the URL.
func (l Link) DisplayTitle() string {
	if l.Title != "" {
		return l.Title
	}
	return l.URL
}
