package models

// ContentItem is a single drama entry as returned by the content API.
// Field names follow the upstream JSON contract.
type ContentItem struct {
	BookID       string    `json:"bookId"`
	BookName     string    `json:"bookName"`
	Cover        string    `json:"cover"`
	Introduction string    `json:"introduction,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	TagNames     []string  `json:"tagNames,omitempty"`
	PlayCount    PlayCount `json:"playCount,omitzero"`
}

// Rail names used in logs, fetch records and cache keys.
const (
	RailFeatured = "featured"
	RailTrending = "trending"
)

// SourceHomepage is the navigation source tag attached to watch links from the homepage.
const SourceHomepage = "homepage"
