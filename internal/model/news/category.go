package news

import (
	"strings"
	"unicode"
)

// Category is one of the fixed news categories the assistant can brief on.
type Category string

const (
	Technology    Category = "technology"
	Politics      Category = "politics"
	Sports        Category = "sports"
	Entertainment Category = "entertainment"
	Business      Category = "business"
	Health        Category = "health"
	Science       Category = "science"
)

// Categories returns the supported categories in presentation order.
func Categories() []Category {
	return []Category{Technology, Politics, Sports, Entertainment, Business, Health, Science}
}

var categoryKeywords = map[Category][]string{
	Technology: {
		"technology", "tech", "ai", "artificial intelligence", "gadget", "gadgets",
		"software", "startup", "startups", "computer", "computers", "smartphone",
	},
	Politics: {
		"politics", "political", "election", "elections", "government", "congress",
		"parliament", "policy", "senate",
	},
	Sports: {
		"sports", "sport", "football", "cricket", "basketball", "tennis", "soccer",
		"olympics", "baseball",
	},
	Entertainment: {
		"entertainment", "movie", "movies", "film", "films", "music", "celebrity",
		"celebrities", "hollywood", "bollywood",
	},
	Business: {
		"business", "market", "markets", "economy", "economic", "finance",
		"financial", "stocks", "trade",
	},
	Health: {
		"health", "medical", "medicine", "wellness", "disease", "hospital",
		"fitness", "vaccine",
	},
	Science: {
		"science", "scientific", "research", "space", "nasa", "physics",
		"climate", "astronomy",
	},
}

// Normalize maps free-form text to a news category via case-insensitive
// keyword matching. Keywords match on word boundaries so that short ones like
// "ai" do not fire inside unrelated words. Returns false when no category
// keyword is present.
func Normalize(text string) (Category, bool) {
	padded := " " + foldToSpaces(strings.ToLower(text)) + " "
	for _, cat := range Categories() {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(padded, " "+kw+" ") {
				return cat, true
			}
		}
	}
	return "", false
}

func foldToSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return ' '
	}, s)
}
