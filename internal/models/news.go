package models

// Column keys of a NewsItem, shared by the JSON encoding and the spreadsheet export.
const (
	KeyTitle       = "title"
	KeySummary     = "summary"
	KeyLink        = "link"
	KeyPublishedAt = "publishedAt"
)

// NewsItem is a single news entry as shown to the user.
// PublishedAt is already formatted for display and may be empty.
type NewsItem struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Link        string `json:"link"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// Key identifies the item inside one list: the link, or the title when there is no link.
func (n NewsItem) Key() string {
	if n.Link != "" {
		return n.Link
	}
	return n.Title
}

// Value returns the field stored under the given column key, or "" for an unknown key.
func (n NewsItem) Value(key string) string {
	switch key {
	case KeyTitle:
		return n.Title
	case KeySummary:
		return n.Summary
	case KeyLink:
		return n.Link
	case KeyPublishedAt:
		return n.PublishedAt
	default:
		return ""
	}
}
