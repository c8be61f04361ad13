package conversation

import (
	"time"

	"github.com/akashvani/voicenews/backend/internal/model/news"
)

// MaxArticles caps how many articles a session retains between turns and how
// many a single response may carry.
const MaxArticles = 5

// Session captures per-conversation state spanning multiple turns, keyed by an
// opaque id supplied by the transport layer.
type Session struct {
	ID           string         `json:"id"`
	LastCategory news.Category  `json:"lastCategory,omitempty"`
	LastArticles []news.Article `json:"lastArticles,omitempty"`
	TurnCount    int            `json:"turnCount"`
	LastActivity time.Time      `json:"lastActivity"`
}

// HasContext reports whether a previous turn left anything a follow-up could
// refer back to.
func (s Session) HasContext() bool {
	return s.LastCategory != "" || len(s.LastArticles) > 0
}
