package intent

import (
	"strings"
	"unicode"

	"github.com/akashvani/voicenews/backend/internal/model/conversation"
	newsModel "github.com/akashvani/voicenews/backend/internal/model/news"
)

var greetingWords = []string{
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "namaste",
}

// searchTriggers are tried in order; the first one found in the utterance
// marks everything after it as the search query.
var searchTriggers = []string{
	"search for", "tell me about", "news about", "news on",
	"look up", "find me", "what's happening with",
}

var followUpPhrases = []string{
	"more", "tell me more", "what else", "anything else", "next", "continue", "go on",
}

// Classify resolves an utterance into an Intent using an ordered rule list.
// Rules are tried top to bottom and the first match wins: greetings only open
// a conversation, explicit category keywords outrank search phrasing, and
// follow-ups require prior context so a fresh "more" never matches. Read-only
// over the session.
func Classify(utt conversation.Utterance, sess conversation.Session) conversation.Intent {
	text := strings.ToLower(strings.TrimSpace(utt.Text))

	if sess.TurnCount == 0 && containsAny(text, greetingWords) {
		return conversation.Intent{Kind: conversation.KindGreeting}
	}

	if cat, ok := newsModel.Normalize(text); ok {
		return conversation.Intent{Kind: conversation.KindCategoryRequest, Category: cat}
	}

	if query, ok := extractQuery(text); ok {
		return conversation.Intent{Kind: conversation.KindTopicSearch, Query: query}
	}

	if sess.HasContext() && isFollowUp(text) {
		// A follow-up inherits the category the session last briefed on.
		return conversation.Intent{Kind: conversation.KindFollowUp, Category: sess.LastCategory}
	}

	return conversation.Intent{Kind: conversation.KindUnknown}
}

// extractQuery returns the text following the earliest search trigger.
func extractQuery(text string) (string, bool) {
	for _, trigger := range searchTriggers {
		idx := strings.Index(text, trigger)
		if idx < 0 {
			continue
		}
		query := strings.TrimSpace(text[idx+len(trigger):])
		query = strings.Trim(query, "?.!,")
		if query != "" {
			return query, true
		}
	}
	return "", false
}

func isFollowUp(text string) bool {
	for _, phrase := range followUpPhrases {
		if text == phrase {
			return true
		}
	}
	// Short continuations like "ok more please" still count.
	if wordCount(text) <= 3 && containsAny(text, []string{"more", "else", "next", "another", "again"}) {
		return true
	}
	return false
}

func containsAny(text string, words []string) bool {
	padded := " " + foldToSpaces(text) + " "
	for _, w := range words {
		if strings.Contains(padded, " "+w+" ") {
			return true
		}
	}
	return false
}

func wordCount(text string) int {
	return len(strings.Fields(foldToSpaces(text)))
}

func foldToSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return ' '
	}, s)
}
