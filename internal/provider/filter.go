package provider

import (
	"strings"

	"github.com/YusukeAsk/016-worldhappynews/pkg/models"
)

// Substrings that mark an article as likely political, economic, or
// military, plus wire services known for hard news. Coarse on purpose:
// no tokenization, no context sensitivity.
var excludeTerms = []string{
	"election", "politic", "congress", "senate", "parliament", "minister", "president", "trump", "biden", "vote", "ballot",
	"stock", "market", "economy", "recession", "gdp", "inflation", "fed ", "federal reserve", "interest rate", "trading", "wall street",
	"war", "military", "nato", "invasion", "attack", "troops", "defense", "weapon",
	"reuters", "bloomberg", "politico", "financial times", "wsj", "wall street journal", "cnbc", "business insider",
}

// IsLikelyPoliticsOrEconomy rejects articles whose title, description,
// or source name contains any excluded term.
func IsLikelyPoliticsOrEconomy(a models.RawArticle) bool {
	text := strings.ToLower(a.Title + " " + a.Description + " " + a.SourceName)
	for _, term := range excludeTerms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
