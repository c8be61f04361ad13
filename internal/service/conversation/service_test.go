package conversation_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akashvani/voicenews/backend/internal/model/conversation"
	newsModel "github.com/akashvani/voicenews/backend/internal/model/news"
	conversationService "github.com/akashvani/voicenews/backend/internal/service/conversation"
	"github.com/akashvani/voicenews/backend/internal/service/session"
)

// fakeProvider serves canned articles or a canned error.
type fakeProvider struct {
	articles []newsModel.Article
	err      error

	lastCategory newsModel.Category
	lastQuery    string
}

func (f *fakeProvider) FetchByCategory(_ context.Context, category newsModel.Category, limit int) ([]newsModel.Article, error) {
	f.lastCategory = category
	if f.err != nil {
		return nil, f.err
	}
	if len(f.articles) > limit {
		return f.articles[:limit], nil
	}
	return f.articles, nil
}

func (f *fakeProvider) Search(_ context.Context, query string, limit int) ([]newsModel.Article, error) {
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	if len(f.articles) > limit {
		return f.articles[:limit], nil
	}
	return f.articles, nil
}

func textUtterance(text string) conversation.Utterance {
	return conversation.Utterance{Text: text, Source: conversation.SourceText, ReceivedAt: time.Now().UTC()}
}

func TestHandleCategoryRequestReturnsFiveArticles(t *testing.T) {
	provider := &fakeProvider{articles: sampleArticles(5)}
	store := session.NewStore(0)
	svc := conversationService.NewService(provider, store, time.Second)

	resp, err := svc.Handle(context.Background(), textUtterance("Give me technology news"), "s1")
	if err != nil {
		t.Fatalf("Handle err: %v", err)
	}

	if resp.Intent.Kind != conversation.KindCategoryRequest || resp.Intent.Category != newsModel.Technology {
		t.Fatalf("unexpected intent: %+v", resp.Intent)
	}
	if len(resp.Articles) != 5 {
		t.Fatalf("expected 5 articles, got %d", len(resp.Articles))
	}
	for _, a := range resp.Articles {
		if !strings.Contains(resp.SpokenText, a.Title) {
			t.Fatalf("spoken text is missing title %q", a.Title)
		}
	}

	sess := store.Get("s1")
	if sess.TurnCount != 1 {
		t.Fatalf("expected turn count 1, got %d", sess.TurnCount)
	}
	if sess.LastCategory != newsModel.Technology {
		t.Fatalf("expected last category technology, got %s", sess.LastCategory)
	}
	if len(sess.LastArticles) != 5 {
		t.Fatalf("expected 5 stored articles, got %d", len(sess.LastArticles))
	}
}

func TestHandleMoreOnFreshSessionClarifies(t *testing.T) {
	provider := &fakeProvider{articles: sampleArticles(5)}
	store := session.NewStore(0)
	svc := conversationService.NewService(provider, store, time.Second)

	resp, err := svc.Handle(context.Background(), textUtterance("more"), "s1")
	if err != nil {
		t.Fatalf("Handle err: %v", err)
	}

	if resp.Intent.Kind != conversation.KindUnknown {
		t.Fatalf("expected unknown intent, got %s", resp.Intent.Kind)
	}
	if len(resp.Articles) != 0 {
		t.Fatalf("expected no articles, got %d", len(resp.Articles))
	}
	if !strings.Contains(resp.SpokenText, "categories") {
		t.Fatalf("expected clarification text, got %q", resp.SpokenText)
	}
}

func TestHandleProviderFailureBecomesApology(t *testing.T) {
	provider := &fakeProvider{err: context.DeadlineExceeded}
	store := session.NewStore(0)
	svc := conversationService.NewService(provider, store, 50*time.Millisecond)

	// Prime the session with a previous successful category.
	store.Turn("s1", func(s *conversation.Session) {
		s.TurnCount = 1
		s.LastCategory = newsModel.Politics
	})

	resp, err := svc.Handle(context.Background(), textUtterance("sports news"), "s1")
	if err != nil {
		t.Fatalf("provider failure must not surface, got %v", err)
	}

	if len(resp.Articles) != 0 {
		t.Fatalf("expected zero articles, got %d", len(resp.Articles))
	}
	if !strings.Contains(resp.SpokenText, "sorry") {
		t.Fatalf("expected apology, got %q", resp.SpokenText)
	}

	sess := store.Get("s1")
	if sess.TurnCount != 2 {
		t.Fatalf("turn count must advance on failure, got %d", sess.TurnCount)
	}
	if sess.LastCategory != newsModel.Politics {
		t.Fatalf("failed fetch must not overwrite last category, got %s", sess.LastCategory)
	}
}

func TestHandleFollowUpReusesPriorArticlesOnFailure(t *testing.T) {
	prior := sampleArticles(3)
	provider := &fakeProvider{err: errors.New("provider down")}
	store := session.NewStore(0)
	svc := conversationService.NewService(provider, store, time.Second)

	store.Turn("s1", func(s *conversation.Session) {
		s.TurnCount = 1
		s.LastCategory = newsModel.Science
		s.LastArticles = prior
	})

	resp, err := svc.Handle(context.Background(), textUtterance("tell me more"), "s1")
	if err != nil {
		t.Fatalf("Handle err: %v", err)
	}

	if resp.Intent.Kind != conversation.KindFollowUp {
		t.Fatalf("expected follow-up, got %s", resp.Intent.Kind)
	}
	if len(resp.Articles) != 3 {
		t.Fatalf("expected the 3 prior articles, got %d", len(resp.Articles))
	}
	if resp.Articles[0].Title != prior[0].Title {
		t.Fatalf("unexpected first article: %q", resp.Articles[0].Title)
	}
}

func TestHandleTopicSearchPassesQuery(t *testing.T) {
	provider := &fakeProvider{articles: sampleArticles(2)}
	store := session.NewStore(0)
	svc := conversationService.NewService(provider, store, time.Second)

	resp, err := svc.Handle(context.Background(), textUtterance("search for mars rover landing"), "s1")
	if err != nil {
		t.Fatalf("Handle err: %v", err)
	}

	if resp.Intent.Kind != conversation.KindTopicSearch {
		t.Fatalf("expected topic search, got %s", resp.Intent.Kind)
	}
	if provider.lastQuery != "mars rover landing" {
		t.Fatalf("unexpected query sent to provider: %q", provider.lastQuery)
	}
}

func TestHandleGreetingSkipsProvider(t *testing.T) {
	provider := &fakeProvider{err: errors.New("must not be called")}
	store := session.NewStore(0)
	svc := conversationService.NewService(provider, store, time.Second)

	resp, err := svc.Handle(context.Background(), textUtterance("hello"), "s1")
	if err != nil {
		t.Fatalf("Handle err: %v", err)
	}
	if resp.Intent.Kind != conversation.KindGreeting {
		t.Fatalf("expected greeting, got %s", resp.Intent.Kind)
	}
	if provider.lastCategory != "" || provider.lastQuery != "" {
		t.Fatal("greeting must not hit the provider")
	}

	// Second "hello" falls through to later rules.
	resp, err = svc.Handle(context.Background(), textUtterance("hello"), "s1")
	if err != nil {
		t.Fatalf("Handle err: %v", err)
	}
	if resp.Intent.Kind == conversation.KindGreeting {
		t.Fatal("greeting must not match on turn 2")
	}
}

func TestHandleEmptyUtteranceIsHardError(t *testing.T) {
	provider := &fakeProvider{}
	store := session.NewStore(0)
	svc := conversationService.NewService(provider, store, time.Second)

	_, err := svc.Handle(context.Background(), textUtterance("   "), "s1")
	if !errors.Is(err, conversationService.ErrEmptyUtterance) {
		t.Fatalf("expected ErrEmptyUtterance, got %v", err)
	}

	if store.Get("s1").TurnCount != 0 {
		t.Fatal("rejected input must not count as a turn")
	}
}

func TestHandleClampsToMaxArticles(t *testing.T) {
	provider := &fakeProvider{articles: sampleArticles(8)}
	store := session.NewStore(0)
	svc := conversationService.NewService(provider, store, time.Second)

	resp, err := svc.Handle(context.Background(), textUtterance("business news"), "s1")
	if err != nil {
		t.Fatalf("Handle err: %v", err)
	}
	if len(resp.Articles) > conversation.MaxArticles {
		t.Fatalf("response exceeds article cap: %d", len(resp.Articles))
	}
}
