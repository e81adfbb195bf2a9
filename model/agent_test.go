package model

import (
	"reflect"
	"regexp"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "ChatGPT", "chatgpt"},
		{"spaces become hyphens", "Stable Diffusion", "stable-diffusion"},
		{"special characters stripped", "GPT-4 (Turbo)!", "gpt-4-turbo"},
		{"hyphen runs collapsed", "a -- b", "a-b"},
		{"leading and trailing separators trimmed", "  --AI Tool--  ", "ai-tool"},
		{"empty name", "", ""},
		{"only special characters", "!!!", ""},
		{"dots stripped", "Claude 3.5 Sonnet", "claude-35-sonnet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

var validSlugRegex = regexp.MustCompile(`^$|^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugifyIdempotentAndWellFormed(t *testing.T) {
	inputs := []string{
		"ChatGPT", "Notion AI", "DALL·E 3", "  Weird -- Name!! ", "perplexity.ai",
		"Émile's Assistant", "tool_hub", "A B  C---D",
	}
	for _, input := range inputs {
		once := Slugify(input)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q != %q", input, once, twice)
		}
		if !validSlugRegex.MatchString(once) {
			t.Errorf("Slugify(%q) = %q contains invalid characters", input, once)
		}
	}
}

func TestCleanPricing(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty is free", "", "Free"},
		{"whitespace only is free", "   ", "Free"},
		{"free keyword", "free", "Free"},
		{"free keyword mixed case", "FREE", "Free"},
		{"freemium", "Freemium tier available", "Freemium"},
		{"paid keyword", "Paid plans only", "Paid"},
		{"dollar sign", "$20/month", "Paid"},
		{"subscription keyword", "Monthly subscription", "Paid"},
		{"plan keyword", "Pro plan", "Paid"},
		{"unknown passes through", "Contact sales", "Contact sales"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanPricing(tt.input)
			if got != tt.expected {
				t.Errorf("CleanPricing(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
			// Idempotence: normalizing twice matches normalizing once.
			if again := CleanPricing(got); again != got {
				t.Errorf("CleanPricing not idempotent for %q: %q -> %q", tt.input, got, again)
			}
		})
	}
}

func TestCleanURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"nan placeholder", "nan", ""},
		{"none placeholder", "None", ""},
		{"null placeholder", "NULL", ""},
		{"https unchanged", "https://example.com", "https://example.com"},
		{"http unchanged", "http://example.com", "http://example.com"},
		{"relative path unchanged", "/agents/chatgpt", "/agents/chatgpt"},
		{"bare domain gets https", "example.com", "https://example.com"},
		{"no dot left alone", "localhost", "localhost"},
		{"surrounding whitespace trimmed", "  example.com  ", "https://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanURL(tt.input)
			if got != tt.expected {
				t.Errorf("CleanURL(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
			if again := CleanURL(got); again != got {
				t.Errorf("CleanURL not idempotent for %q: %q -> %q", tt.input, got, again)
			}
		})
	}
}

func TestSplitTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"basic split", "Writing;Research", []string{"Writing", "Research"}},
		{"trims whitespace", " Writing ; Research ", []string{"Writing", "Research"}},
		{"drops empty tokens", "Writing;;Research;", []string{"Writing", "Research"}},
		{"empty input", "", []string{}},
		{"single token", "Writing", []string{"Writing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTokens(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitTokens(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewAgentDerivedFields(t *testing.T) {
	agent := NewAgent(RawAgent{
		Name:     "ChatGPT",
		Domains:  "Writing;Research",
		UseCases: "Content Writing;Q&A",
		Platform: "Web;API",
		Pricing:  "freemium with paid tiers",
		URL:      "chat.openai.com",
	})

	if agent.Slug != "chatgpt" {
		t.Errorf("Slug = %q, expected chatgpt", agent.Slug)
	}
	if agent.PrimaryDomain != "Writing" {
		t.Errorf("PrimaryDomain = %q, expected Writing (first token)", agent.PrimaryDomain)
	}
	if agent.PrimaryUseCase != "Content Writing" {
		t.Errorf("PrimaryUseCase = %q, expected Content Writing", agent.PrimaryUseCase)
	}
	if agent.PricingClean != "Freemium" {
		t.Errorf("PricingClean = %q, expected Freemium", agent.PricingClean)
	}
	if agent.URL != "https://chat.openai.com" {
		t.Errorf("URL = %q, expected https prefix", agent.URL)
	}
}

func TestNewAgentDefaultsForEmptyFacets(t *testing.T) {
	agent := NewAgent(RawAgent{Name: "Bare"})

	if agent.PrimaryDomain != "General AI" {
		t.Errorf("PrimaryDomain = %q, expected General AI fallback", agent.PrimaryDomain)
	}
	if agent.PrimaryUseCase != "General" {
		t.Errorf("PrimaryUseCase = %q, expected General fallback", agent.PrimaryUseCase)
	}
	if len(agent.DomainList) != 0 || len(agent.UseCaseList) != 0 || len(agent.PlatformList) != 0 {
		t.Errorf("expected empty token lists, got %v / %v / %v",
			agent.DomainList, agent.UseCaseList, agent.PlatformList)
	}
}

func TestJSONLD(t *testing.T) {
	free := NewAgent(RawAgent{Name: "Free Tool", Pricing: "free"})
	paid := NewAgent(RawAgent{Name: "Paid Tool", Pricing: "$10"})

	freeOffer := free.JSONLD()["offers"].(map[string]any)
	if freeOffer["price"] != "0" {
		t.Errorf("free agent price = %v, expected \"0\"", freeOffer["price"])
	}

	paidOffer := paid.JSONLD()["offers"].(map[string]any)
	if paidOffer["price"] != "varies" {
		t.Errorf("paid agent price = %v, expected \"varies\"", paidOffer["price"])
	}

	if free.JSONLD()["@type"] != "SoftwareApplication" {
		t.Errorf("unexpected @type %v", free.JSONLD()["@type"])
	}
}
