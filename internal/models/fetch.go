package models

import "time"

// FetchRecord is one diagnostic entry for a single list fetch.
type FetchRecord struct {
	ID         string    `json:"id"`
	Rail       string    `json:"rail"`
	Path       string    `json:"path"`
	Query      string    `json:"query,omitempty"`
	ItemCount  int       `json:"item_count"`
	Shape      string    `json:"shape,omitempty"`
	Error      string    `json:"error,omitempty"`
	Applied    bool      `json:"applied"`
	DurationMs int64     `json:"duration_ms"`
	FetchedAt  time.Time `json:"fetched_at"`
}
