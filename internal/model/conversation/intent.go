package conversation

import "github.com/akashvani/voicenews/backend/internal/model/news"

// Kind tags the classified purpose of an utterance.
type Kind string

const (
	KindGreeting        Kind = "greeting"
	KindCategoryRequest Kind = "category_request"
	KindTopicSearch     Kind = "topic_search"
	KindFollowUp        Kind = "follow_up"
	KindUnknown         Kind = "unknown"
)

// Intent is the classified purpose of a single utterance. Category is set for
// category requests and for follow-ups that inherit one from the session;
// Query is set for topic searches.
type Intent struct {
	Kind     Kind          `json:"kind"`
	Category news.Category `json:"category,omitempty"`
	Query    string        `json:"query,omitempty"`
}
