package models

import "github.com/google/uuid"

// ResolveResponse contains the result of keyword resolution.
// For the list behavior URL is the keyword's list page and LinkID is zero.
type ResolveResponse struct {
	Keyword  string    `json:"keyword"`
	Behavior string    `json:"behavior"`
	LinkID   uuid.UUID `json:"link_id"`
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	Links    int       `json:"links"`
}
