package conversation

import "github.com/akashvani/voicenews/backend/internal/model/news"

// Response is the composed reply for a single turn. SpokenText is meant for
// audio synthesis; Articles carries at most MaxArticles entries in the order
// the provider returned them; Intent is echoed for diagnostics.
type Response struct {
	SpokenText string         `json:"spokenText"`
	Articles   []news.Article `json:"articles"`
	Intent     Intent         `json:"intent"`
}
