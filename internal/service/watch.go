package service

import "net/url"

// WatchURL is the navigation destination for a content card.
func WatchURL(bookID, source string) string {
	q := url.Values{}
	q.Set("bookId", bookID)
	if source != "" {
		q.Set("source", source)
	}
	return "/watch?" + q.Encode()
}
