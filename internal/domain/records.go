package domain

import "context"

// ListingRecord is one topic link found on a search-results page.
type ListingRecord struct {
	Link  string `json:"link"`
	Title string `json:"title"`
	Time  string `json:"time"`
	Forum string `json:"forum"`
}

// ReplyRecord is a single reply under a forum topic. Fields other than
// Content are optional and omitted from JSON when the markup lacks them.
// Order within PostDetail.Replies follows document order, which reflects
// forum chronology.
type ReplyRecord struct {
	Author    string `json:"author,omitempty"`
	Time      string `json:"time,omitempty"`
	Content   string `json:"content"`
	Location  string `json:"location,omitempty"`
	PostCount string `json:"post_count,omitempty"`
}

// PostDetail is the full page for one forum topic: the original post plus
// its replies. Content is plain text with markup stripped, "" when the
// page has no content section.
type PostDetail struct {
	URL     string        `json:"url,omitempty"`
	Title   string        `json:"title,omitempty"`
	Content string        `json:"content"`
	Replies []ReplyRecord `json:"replies"`
}

// Fetcher retrieves the raw markup of a single page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
