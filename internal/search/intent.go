package search

import (
	"regexp"
	"sort"
	"strings"
)

// wordRegex matches alphanumeric runs used for content-keyword extraction.
var wordRegex = regexp.MustCompile(`[a-z0-9]+`)

// minKeywordLength is the minimum length for a token to count as a content keyword.
const minKeywordLength = 3

// domainKeywords maps catalog domain labels to trigger substrings.
// A label matches when any trigger occurs in the lowercased query.
var domainKeywords = map[string][]string{
	"Software Development": {"code", "coding", "programming", "developer", "development", "software", "github", "copilot", "ide", "autocomplete"},
	"Writing":              {"writing", "content", "text", "article", "blog", "copywriting", "grammar", "editing", "documentation"},
	"Marketing":            {"marketing", "ads", "advertising", "campaign", "social media", "email", "mailchimp", "hubspot", "sales"},
	"Productivity":         {"productivity", "organize", "schedule", "task", "meeting", "notes", "calendar", "workflow", "automation"},
	"Image Generation":     {"image", "picture", "photo", "visual", "art", "design", "dall-e", "midjourney", "stable diffusion"},
	"Audio Generation":     {"audio", "voice", "speech", "sound", "music", "podcast", "tts", "text-to-speech"},
	"Video Generation":     {"video", "animation", "movie", "clip", "motion", "multimedia"},
	"Education":            {"learn", "education", "teaching", "tutor", "study", "academic", "student", "homework"},
	"Research":             {"research", "analysis", "data", "information", "study", "investigation", "academic"},
	"Healthcare":           {"health", "medical", "doctor", "patient", "diagnosis", "treatment", "medicine"},
	"Finance":              {"finance", "money", "investment", "trading", "banking", "accounting", "budget"},
	"Customer Service":     {"customer", "support", "service", "help", "chat", "ticket", "assistance"},
}

// platformKeywords maps catalog platform labels to trigger substrings.
var platformKeywords = map[string][]string{
	"Web":               {"web", "browser", "online", "website"},
	"API":               {"api", "integration", "development", "programmatic"},
	"iOS":               {"ios", "iphone", "ipad", "mobile", "app store"},
	"Android":           {"android", "mobile", "google play"},
	"Desktop":           {"desktop", "computer", "pc", "mac"},
	"Chrome Extension":  {"chrome", "extension", "browser"},
	"VS Code Extension": {"vscode", "vs code", "editor", "ide"},
}

// pricingKeywords maps pricing tiers to trigger substrings.
var pricingKeywords = map[string][]string{
	"Free":     {"free", "no cost", "gratis", "zero cost"},
	"Freemium": {"freemium", "free tier", "limited free"},
	"Paid":     {"paid", "subscription", "premium", "cost", "price"},
}

// stopWords are dropped from content-keyword extraction.
var stopWords = map[string]struct{}{
	"for": {}, "the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "is": {}, "are": {}, "was": {}, "were": {}, "a": {},
	"an": {}, "that": {}, "this": {}, "with": {}, "i": {}, "me": {}, "my": {},
	"we": {}, "our": {}, "you": {}, "your": {},
}

// Intent is the structured interpretation of a free-text query: the catalog
// vocabulary labels whose trigger lists intersect the query, plus the leftover
// content keywords. It is derived per query and never stored.
type Intent struct {
	Domains   []string
	Platforms []string
	Pricing   []string
	Keywords  []string
}

// ExtractIntent derives an Intent from a free-text query using the fixed
// keyword vocabularies. Matching is case-insensitive substring containment.
func ExtractIntent(query string) Intent {
	queryLower := strings.ToLower(query)

	intent := Intent{
		Domains:   matchVocabulary(queryLower, domainKeywords),
		Platforms: matchVocabulary(queryLower, platformKeywords),
		Pricing:   matchVocabulary(queryLower, pricingKeywords),
		Keywords:  make([]string, 0),
	}

	for _, word := range wordRegex.FindAllString(queryLower, -1) {
		if _, stop := stopWords[word]; stop {
			continue
		}
		if len(word) >= minKeywordLength {
			intent.Keywords = append(intent.Keywords, word)
		}
	}

	return intent
}

// matchVocabulary returns the labels whose trigger lists intersect the query.
// Labels are returned in sorted order so intent extraction is deterministic.
func matchVocabulary(queryLower string, vocabulary map[string][]string) []string {
	matched := make([]string, 0)
	for label, triggers := range vocabulary {
		for _, trigger := range triggers {
			if strings.Contains(queryLower, trigger) {
				matched = append(matched, label)
				break
			}
		}
	}
	sort.Strings(matched)
	return matched
}
