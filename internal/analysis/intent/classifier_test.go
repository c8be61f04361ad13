package intent_test

import (
	"testing"
	"time"

	"github.com/akashvani/voicenews/backend/internal/analysis/intent"
	"github.com/akashvani/voicenews/backend/internal/model/conversation"
	newsModel "github.com/akashvani/voicenews/backend/internal/model/news"
)

func utterance(text string) conversation.Utterance {
	return conversation.Utterance{Text: text, Source: conversation.SourceText, ReceivedAt: time.Now().UTC()}
}

func TestClassifyGreetingOnlyOpensConversation(t *testing.T) {
	fresh := conversation.Session{ID: "s1"}

	got := intent.Classify(utterance("hello"), fresh)
	if got.Kind != conversation.KindGreeting {
		t.Fatalf("expected greeting on turn 0, got %s", got.Kind)
	}

	second := conversation.Session{ID: "s1", TurnCount: 2}
	got = intent.Classify(utterance("hello"), second)
	if got.Kind == conversation.KindGreeting {
		t.Fatal("greeting must not match after the first turn")
	}
}

func TestClassifyCategoryRequest(t *testing.T) {
	sess := conversation.Session{ID: "s1"}

	got := intent.Classify(utterance("Give me technology news"), sess)
	if got.Kind != conversation.KindCategoryRequest {
		t.Fatalf("expected category request, got %s", got.Kind)
	}
	if got.Category != newsModel.Technology {
		t.Fatalf("expected technology, got %s", got.Category)
	}
}

func TestClassifyCategoryKeywordOutranksSearchPhrase(t *testing.T) {
	sess := conversation.Session{ID: "s1", TurnCount: 1}

	got := intent.Classify(utterance("tell me about sports"), sess)
	if got.Kind != conversation.KindCategoryRequest {
		t.Fatalf("category keyword should win over search trigger, got %s", got.Kind)
	}
	if got.Category != newsModel.Sports {
		t.Fatalf("expected sports, got %s", got.Category)
	}
}

func TestClassifyTopicSearch(t *testing.T) {
	sess := conversation.Session{ID: "s1", TurnCount: 1}

	got := intent.Classify(utterance("search for quantum computing breakthroughs"), sess)
	if got.Kind != conversation.KindTopicSearch {
		t.Fatalf("expected topic search, got %s", got.Kind)
	}
	if got.Query != "quantum computing breakthroughs" {
		t.Fatalf("unexpected query: %q", got.Query)
	}
}

func TestClassifyFollowUpNeedsContext(t *testing.T) {
	fresh := conversation.Session{ID: "s1", TurnCount: 1}
	got := intent.Classify(utterance("more"), fresh)
	if got.Kind != conversation.KindUnknown {
		t.Fatalf("follow-up must not match without context, got %s", got.Kind)
	}

	primed := conversation.Session{ID: "s1", TurnCount: 1, LastCategory: newsModel.Sports}
	got = intent.Classify(utterance("more"), primed)
	if got.Kind != conversation.KindFollowUp {
		t.Fatalf("expected follow-up with context, got %s", got.Kind)
	}
	if got.Category != newsModel.Sports {
		t.Fatalf("follow-up should inherit the last category, got %s", got.Category)
	}
}

func TestClassifyFollowUpFromArticlesOnly(t *testing.T) {
	sess := conversation.Session{
		ID:           "s1",
		TurnCount:    1,
		LastArticles: []newsModel.Article{{Title: "something"}},
	}
	got := intent.Classify(utterance("what else"), sess)
	if got.Kind != conversation.KindFollowUp {
		t.Fatalf("expected follow-up, got %s", got.Kind)
	}
}

func TestClassifyUnknown(t *testing.T) {
	sess := conversation.Session{ID: "s1", TurnCount: 1}
	got := intent.Classify(utterance("what is the meaning of life"), sess)
	if got.Kind != conversation.KindUnknown {
		t.Fatalf("expected unknown, got %s", got.Kind)
	}
}
