package conversation

import (
	"fmt"
	"strings"

	"github.com/akashvani/voicenews/backend/internal/model/conversation"
	newsModel "github.com/akashvani/voicenews/backend/internal/model/news"
)

// maxSummaryLen bounds how much of an article summary gets read aloud.
const maxSummaryLen = 240

const greetingText = "Hello! I'm Akashvani, your voice assistant for news updates. " +
	"Ask me for the latest headlines from categories like technology, politics, sports or entertainment."

// Compose builds the spoken reply and article list for a classified turn.
// Pure: identical (intent, articles) inputs always yield identical responses,
// and the article order is preserved exactly as received.
func Compose(in conversation.Intent, articles []newsModel.Article) conversation.Response {
	switch in.Kind {
	case conversation.KindGreeting:
		return conversation.Response{SpokenText: greetingText, Articles: []newsModel.Article{}, Intent: in}
	case conversation.KindUnknown:
		return conversation.Response{SpokenText: clarificationText(), Articles: []newsModel.Article{}, Intent: in}
	}

	if len(articles) == 0 {
		return conversation.Response{SpokenText: apologyText(in), Articles: []newsModel.Article{}, Intent: in}
	}

	var b strings.Builder
	b.WriteString(leadIn(in, len(articles)))
	for i, a := range articles {
		fmt.Fprintf(&b, " %d. %s.", i+1, strings.TrimRight(a.Title, ". "))
		if summary := truncateSummary(a.Summary); summary != "" && summary != a.Title {
			b.WriteString(" " + summary)
			if !strings.HasSuffix(summary, ".") {
				b.WriteString(".")
			}
		}
		if a.SourceName != "" {
			fmt.Fprintf(&b, " From %s.", a.SourceName)
		}
	}

	return conversation.Response{
		SpokenText: b.String(),
		Articles:   append([]newsModel.Article(nil), articles...),
		Intent:     in,
	}
}

func leadIn(in conversation.Intent, count int) string {
	switch in.Kind {
	case conversation.KindTopicSearch:
		return fmt.Sprintf("Here are the top %d stories about %s.", count, in.Query)
	case conversation.KindFollowUp:
		if in.Category != "" {
			return fmt.Sprintf("Here is more %s news, the top %d stories.", in.Category, count)
		}
		return fmt.Sprintf("Here is more of the latest news, the top %d stories.", count)
	default:
		return fmt.Sprintf("Here are the top %d %s headlines.", count, in.Category)
	}
}

func apologyText(in conversation.Intent) string {
	switch in.Kind {
	case conversation.KindCategoryRequest:
		return fmt.Sprintf("I'm sorry, I couldn't fetch %s news at the moment. Would you like news from another category?", in.Category)
	case conversation.KindTopicSearch:
		return fmt.Sprintf("I couldn't find any recent news about %q. Would you like me to search for something else?", in.Query)
	default:
		return "I'm sorry, I don't have anything more on that right now. Would you like news from another category?"
	}
}

func clarificationText() string {
	names := make([]string, 0, len(newsModel.Categories()))
	for _, cat := range newsModel.Categories() {
		names = append(names, string(cat))
	}
	return fmt.Sprintf("I can provide news updates from these categories: %s. Which would you like to hear about?",
		strings.Join(names, ", "))
}

// truncateSummary clips a summary to a spoken-friendly length on a rune
// boundary, appending an ellipsis when it had to cut.
func truncateSummary(summary string) string {
	summary = strings.TrimSpace(summary)
	runes := []rune(summary)
	if len(runes) <= maxSummaryLen {
		return summary
	}
	return strings.TrimSpace(string(runes[:maxSummaryLen-3])) + "..."
}
