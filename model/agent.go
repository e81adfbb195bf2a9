// Package model defines the core data records of the agent directory:
// catalog entries (agents) and user-submitted ratings.
package model

import (
	"regexp"
	"strings"
)

// nonSlugCharsRegex matches characters that are not lowercase alphanumerics, whitespace, or hyphens.
var nonSlugCharsRegex = regexp.MustCompile(`[^a-z0-9\s-]`)

// slugSeparatorRegex matches runs of whitespace and/or hyphens to collapse into one hyphen.
var slugSeparatorRegex = regexp.MustCompile(`[-\s]+`)

// RawAgent is one raw row from a collaborator source (CSV file, JSON file,
// form submission). All fields are free text; normalization happens in NewAgent.
type RawAgent struct {
	Name            string `json:"name"`
	Domains         string `json:"domains"`
	UseCases        string `json:"use_cases"`
	ShortDesc       string `json:"short_desc"`
	LongDesc        string `json:"long_desc"`
	Creator         string `json:"creator"`
	URL             string `json:"url"`
	Platform        string `json:"platform"`
	Pricing         string `json:"pricing"`
	UnderlyingModel string `json:"underlying_model"`
	Deployment      string `json:"deployment"`
	Legitimacy      string `json:"legitimacy"`
	WhatUsersThink  string `json:"what_users_think,omitempty"`
}

// Agent is one cataloged AI agent. Derived fields (Slug, the token lists,
// PricingClean, the primary facets, and the cleaned URL) are computed once in
// NewAgent and never recomputed; treat a constructed Agent as immutable.
type Agent struct {
	Name            string `json:"name"`
	Domains         string `json:"domains"`
	UseCases        string `json:"use_cases"`
	ShortDesc       string `json:"short_desc"`
	LongDesc        string `json:"long_desc"`
	Creator         string `json:"creator"`
	URL             string `json:"url"`
	Platform        string `json:"platform"`
	Pricing         string `json:"pricing"`
	UnderlyingModel string `json:"underlying_model"`
	Deployment      string `json:"deployment"`
	Legitimacy      string `json:"legitimacy"`
	WhatUsersThink  string `json:"what_users_think,omitempty"`

	Slug           string   `json:"slug"`
	DomainList     []string `json:"domain_list"`
	UseCaseList    []string `json:"use_case_list"`
	PlatformList   []string `json:"platform_list"`
	PricingClean   string   `json:"pricing_clean"`
	PrimaryDomain  string   `json:"primary_domain"`
	PrimaryUseCase string   `json:"primary_use_case"`
}

// NewAgent builds a normalized Agent from a raw row.
func NewAgent(raw RawAgent) Agent {
	agent := Agent{
		Name:            raw.Name,
		Domains:         raw.Domains,
		UseCases:        raw.UseCases,
		ShortDesc:       raw.ShortDesc,
		LongDesc:        raw.LongDesc,
		Creator:         raw.Creator,
		URL:             CleanURL(raw.URL),
		Platform:        raw.Platform,
		Pricing:         raw.Pricing,
		UnderlyingModel: raw.UnderlyingModel,
		Deployment:      raw.Deployment,
		Legitimacy:      raw.Legitimacy,
		WhatUsersThink:  raw.WhatUsersThink,
	}

	agent.Slug = Slugify(raw.Name)
	agent.DomainList = SplitTokens(raw.Domains)
	agent.UseCaseList = SplitTokens(raw.UseCases)
	agent.PlatformList = SplitTokens(raw.Platform)
	agent.PricingClean = CleanPricing(raw.Pricing)

	// First token is the primary facet used for related-agent lookups.
	agent.PrimaryDomain = "General AI"
	if len(agent.DomainList) > 0 {
		agent.PrimaryDomain = agent.DomainList[0]
	}
	agent.PrimaryUseCase = "General"
	if len(agent.UseCaseList) > 0 {
		agent.PrimaryUseCase = agent.UseCaseList[0]
	}

	return agent
}

// Slugify derives a URL-safe identifier from an agent name: lowercase,
// non-alphanumerics stripped, whitespace/hyphen runs collapsed to a single
// hyphen, leading/trailing hyphens trimmed. Slugify is idempotent.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonSlugCharsRegex.ReplaceAllString(slug, "")
	slug = slugSeparatorRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// SplitTokens splits a ";"-delimited attribute string into trimmed, non-empty
// tokens. Insertion order is preserved; the first token is the primary value.
func SplitTokens(raw string) []string {
	tokens := make([]string, 0) // Initialize as empty slice, not nil
	for _, part := range strings.Split(raw, ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}
	return tokens
}

// CleanPricing normalizes free-text pricing into one of the standard tiers
// (Free, Freemium, Paid) by keyword sniffing, or passes the original text
// through when no keyword matches. CleanPricing is idempotent.
func CleanPricing(pricing string) string {
	pricing = strings.TrimSpace(pricing)
	lower := strings.ToLower(pricing)

	switch {
	case pricing == "" || lower == "free":
		return "Free"
	case strings.Contains(lower, "freemium"):
		return "Freemium"
	case strings.Contains(lower, "paid"),
		strings.Contains(lower, "$"),
		strings.Contains(lower, "subscription"),
		strings.Contains(lower, "plan"):
		return "Paid"
	default:
		return pricing
	}
}

// CleanURL normalizes an agent URL. Placeholder values ("nan", "none", "null")
// become empty, scheme-qualified and relative URLs pass through unchanged, and
// bare domain names get an https:// prefix. CleanURL is idempotent.
func CleanURL(url string) string {
	trimmed := strings.TrimSpace(url)
	switch strings.ToLower(trimmed) {
	case "", "nan", "none", "null":
		return ""
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}

	// Relative paths are left alone for the front-end to resolve.
	if strings.HasPrefix(trimmed, "/") {
		return trimmed
	}

	if strings.Contains(trimmed, ".") &&
		!strings.HasPrefix(trimmed, "ftp://") && !strings.HasPrefix(trimmed, "file://") {
		return "https://" + trimmed
	}

	return trimmed
}

// Raw returns the raw-row representation of the agent, used when persisting
// user-submitted agents back to their collaborator store.
func (a Agent) Raw() RawAgent {
	return RawAgent{
		Name:            a.Name,
		Domains:         a.Domains,
		UseCases:        a.UseCases,
		ShortDesc:       a.ShortDesc,
		LongDesc:        a.LongDesc,
		Creator:         a.Creator,
		URL:             a.URL,
		Platform:        a.Platform,
		Pricing:         a.Pricing,
		UnderlyingModel: a.UnderlyingModel,
		Deployment:      a.Deployment,
		Legitimacy:      a.Legitimacy,
		WhatUsersThink:  a.WhatUsersThink,
	}
}

// JSONLD generates schema.org SoftwareApplication structured data for SEO.
func (a Agent) JSONLD() map[string]any {
	price := "varies"
	if a.PricingClean == "Free" {
		price = "0"
	}

	return map[string]any{
		"@context":            "https://schema.org",
		"@type":               "SoftwareApplication",
		"name":                a.Name,
		"description":         a.ShortDesc,
		"applicationCategory": "AI Agent",
		"operatingSystem":     "All",
		"url":                 a.URL,
		"creator": map[string]any{
			"@type": "Organization",
			"name":  a.Creator,
		},
		"offers": map[string]any{
			"@type":         "Offer",
			"price":         price,
			"priceCurrency": "USD",
		},
		"keywords": strings.Join(a.DomainList, ", ") + ", " + strings.Join(a.UseCaseList, ", "),
	}
}
