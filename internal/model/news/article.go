package news

import "time"

// Article is a single news story as returned by the provider. Immutable once
// fetched; ordering within a briefing is the provider's relevance/recency order.
type Article struct {
	Title       string    `json:"title"`
	SourceName  string    `json:"sourceName"`
	Summary     string    `json:"summary"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}
