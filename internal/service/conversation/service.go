package conversation

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/akashvani/voicenews/backend/internal/analysis/intent"
	"github.com/akashvani/voicenews/backend/internal/model/conversation"
	newsModel "github.com/akashvani/voicenews/backend/internal/model/news"
	"github.com/akashvani/voicenews/backend/internal/service/session"
)

// ErrEmptyUtterance marks malformed input with no utterance text. This is the
// only failure the transport layer sees as a hard error.
var ErrEmptyUtterance = errors.New("utterance text is required")

// DefaultFetchTimeout bounds a single provider call.
const DefaultFetchTimeout = 10 * time.Second

// Provider fetches ranked articles from the news backend. Both calls are
// treated as slow and fallible; failures map to the zero-articles path.
type Provider interface {
	FetchByCategory(ctx context.Context, category newsModel.Category, limit int) ([]newsModel.Article, error)
	Search(ctx context.Context, query string, limit int) ([]newsModel.Article, error)
}

// Service orchestrates one conversation turn end to end: classify, fetch,
// compose, update session. It is the only component that knows the turn
// sequence.
type Service struct {
	provider Provider
	sessions *session.Store
	timeout  time.Duration
}

// NewService wires the orchestrator to its collaborators.
func NewService(provider Provider, sessions *session.Store, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Service{provider: provider, sessions: sessions, timeout: timeout}
}

// Handle runs a single turn for the given session. The per-session lock is
// held for the whole turn, so concurrent requests on one session id are
// serialized while different sessions proceed independently. Provider failures
// never surface; they become the no-results spoken response. The session's
// turn count and activity are refreshed even then, but its last category and
// articles are only overwritten by a successful fetch.
func (s *Service) Handle(ctx context.Context, utt conversation.Utterance, sessionID string) (conversation.Response, error) {
	if strings.TrimSpace(utt.Text) == "" {
		return conversation.Response{}, ErrEmptyUtterance
	}

	var resp conversation.Response
	s.sessions.Turn(sessionID, func(sess *conversation.Session) {
		in := intent.Classify(utt, *sess)
		articles := s.fetch(ctx, in, sess)
		if len(articles) > conversation.MaxArticles {
			articles = articles[:conversation.MaxArticles]
		}
		resp = Compose(in, articles)

		sess.TurnCount++
		sess.LastActivity = time.Now().UTC()
		if len(articles) > 0 {
			sess.LastArticles = append([]newsModel.Article(nil), articles...)
			if in.Kind == conversation.KindCategoryRequest {
				sess.LastCategory = in.Category
			}
		}
	})
	return resp, nil
}

// fetch retrieves articles for intents that need them, with a bounded timeout.
// Errors and timeouts collapse to nil so the composer produces the apology
// path. Follow-ups without a fetchable category fall back to what the session
// already holds.
func (s *Service) fetch(ctx context.Context, in conversation.Intent, sess *conversation.Session) []newsModel.Article {
	switch in.Kind {
	case conversation.KindCategoryRequest, conversation.KindTopicSearch, conversation.KindFollowUp:
	default:
		return nil
	}

	fctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		articles []newsModel.Article
		err      error
	)
	switch in.Kind {
	case conversation.KindCategoryRequest:
		articles, err = s.provider.FetchByCategory(fctx, in.Category, conversation.MaxArticles)
	case conversation.KindTopicSearch:
		articles, err = s.provider.Search(fctx, in.Query, conversation.MaxArticles)
	case conversation.KindFollowUp:
		if in.Category != "" {
			articles, err = s.provider.FetchByCategory(fctx, in.Category, conversation.MaxArticles)
		}
		if err != nil || len(articles) == 0 {
			if err != nil {
				log.Printf("[conversation] follow-up fetch failed, reusing prior articles: %v", err)
			}
			return append([]newsModel.Article(nil), sess.LastArticles...)
		}
	}

	if err != nil {
		log.Printf("[conversation] provider fetch failed: %v", err)
		return nil
	}
	return articles
}
