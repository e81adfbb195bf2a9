package catalog

import (
	"sort"
	"strings"

	"github.com/agentdir/agent-directory/model"
)

// Filters are the structured facet criteria applied to a candidate list.
// All set criteria must match (logical AND); empty values are ignored.
type Filters struct {
	Domain   string
	UseCase  string
	Platform string
	Pricing  string
	Model    string
	Creator  string
}

// IsZero reports whether no criterion is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// applyFilters narrows agents to those matching every set criterion, keeping
// input order. Domain, use case, platform, and pricing are exact matches;
// model and creator are case-insensitive substring tests.
func applyFilters(agents []model.Agent, filters Filters) []model.Agent {
	if filters.IsZero() {
		return agents
	}

	out := make([]model.Agent, 0, len(agents))
	for _, agent := range agents {
		if filters.Domain != "" && !containsToken(agent.DomainList, filters.Domain) {
			continue
		}
		if filters.UseCase != "" && !containsToken(agent.UseCaseList, filters.UseCase) {
			continue
		}
		if filters.Platform != "" && !containsToken(agent.PlatformList, filters.Platform) {
			continue
		}
		if filters.Pricing != "" && agent.PricingClean != filters.Pricing {
			continue
		}
		if filters.Model != "" && !containsFold(agent.UnderlyingModel, filters.Model) {
			continue
		}
		if filters.Creator != "" && !containsFold(agent.Creator, filters.Creator) {
			continue
		}
		out = append(out, agent)
	}
	return out
}

// containsToken is an exact membership test against a token list.
func containsToken(tokens []string, value string) bool {
	for _, token := range tokens {
		if token == value {
			return true
		}
	}
	return false
}

// containsFold is a case-insensitive substring test.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// FilterOptions are the distinct facet values observed across the catalog,
// sorted, used to populate selection UIs.
type FilterOptions struct {
	Domains   []string `json:"domains"`
	UseCases  []string `json:"use_cases"`
	Platforms []string `json:"platforms"`
	Pricing   []string `json:"pricing"`
	Models    []string `json:"models"`
	Creators  []string `json:"creators"`
}

// FilterOptions recomputes the facet option sets from the live catalog, so
// additions made since the last call are always reflected.
func (c *Catalog) FilterOptions() FilterOptions {
	c.mu.RLock()
	defer c.mu.RUnlock()

	domains := make(map[string]struct{})
	useCases := make(map[string]struct{})
	platforms := make(map[string]struct{})
	pricing := make(map[string]struct{})
	models := make(map[string]struct{})
	creators := make(map[string]struct{})

	for _, agent := range c.agents {
		for _, d := range agent.DomainList {
			domains[d] = struct{}{}
		}
		for _, u := range agent.UseCaseList {
			useCases[u] = struct{}{}
		}
		for _, p := range agent.PlatformList {
			platforms[p] = struct{}{}
		}
		if agent.PricingClean != "" {
			pricing[agent.PricingClean] = struct{}{}
		}
		if m := strings.TrimSpace(agent.UnderlyingModel); m != "" {
			models[m] = struct{}{}
		}
		if cr := strings.TrimSpace(agent.Creator); cr != "" {
			creators[cr] = struct{}{}
		}
	}

	return FilterOptions{
		Domains:   sortedKeys(domains),
		UseCases:  sortedKeys(useCases),
		Platforms: sortedKeys(platforms),
		Pricing:   sortedKeys(pricing),
		Models:    sortedKeys(models),
		Creators:  sortedKeys(creators),
	}
}

// sortedKeys returns the map keys as a sorted slice.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
