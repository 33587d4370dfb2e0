package domain

// FeedInfo represents summary information about a loaded feed
type FeedInfo struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	EntryCount  int    `json:"entry_count"`
	URL         string `json:"url"`
}
