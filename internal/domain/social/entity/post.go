package entity

import "time"

// Post represents a post as returned by the social API, optionally enriched
// with the author name and a comment count snapshot.
type Post struct {
	ID           int    `json:"id"`
	UserID       int    `json:"userId"`
	Content      string `json:"content"`
	UserName     string `json:"userName,omitempty"`
	CommentCount *int   `json:"commentCount,omitempty"`
	Timestamp    string `json:"timestamp,omitempty"` // ISO-8601
}

// Comments returns the comment count snapshot, zero when unknown
func (p Post) Comments() int {
	if p.CommentCount == nil {
		return 0
	}
	return *p.CommentCount
}

// timestampLayouts are tried in order; the last two carry no zone and parse as UTC
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	time.DateOnly,
}

// CreatedAt parses Timestamp. ok is false for empty or malformed values.
func (p Post) CreatedAt() (t time.Time, ok bool) {
	if p.Timestamp == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, p.Timestamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}
