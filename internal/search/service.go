// Package search implements the relevance engine: it extracts structured
// intent from free-text queries and ranks catalog agents by a weighted
// combination of fuzzy text similarity and facet-intent bonuses.
package search

import (
	"sort"
	"strings"

	"github.com/agentdir/agent-directory/internal/fuzzy"
	"github.com/agentdir/agent-directory/model"
)

// DefaultThreshold is the minimum relevance score an agent needs to appear
// in ranked results.
const DefaultThreshold = 0.1

// Scoring weights. Individual contributions accumulate freely; only the final
// per-agent total is capped at 1.0.
const (
	fuzzyTextWeight        = 0.4
	domainBonus            = 0.3
	platformBonus          = 0.2
	pricingBonus           = 0.1
	keywordNameBonus       = 0.3
	keywordShortBonus      = 0.2
	keywordLongBonus       = 0.1
	creatorBonus           = 0.15
	useCaseBonus           = 0.1
	facetSimilarityFloor   = 0.8
	useCaseSimilarityFloor = 0.7
)

// Service ranks agents against free-text queries.
type Service struct {
	threshold float64
}

// NewService creates a relevance engine with the given score threshold.
// A non-positive threshold falls back to DefaultThreshold.
func NewService(threshold float64) *Service {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Service{threshold: threshold}
}

// scoredAgent pairs an agent with its relevance score during ranking.
type scoredAgent struct {
	agent model.Agent
	score float64
}

// Rank orders agents by descending relevance to the query, dropping agents
// below the threshold. An empty or whitespace-only query is the identity:
// the input slice is returned unchanged in the caller's order. Ties keep
// their original relative order (stable sort). Scores are internal and are
// never exposed to callers.
func (s *Service) Rank(agents []model.Agent, query string) []model.Agent {
	if strings.TrimSpace(query) == "" {
		return agents
	}

	query = strings.TrimSpace(query)
	intent := ExtractIntent(query)

	scored := make([]scoredAgent, 0, len(agents))
	for _, agent := range agents {
		score := s.scoreAgent(agent, query, intent)
		if score >= s.threshold {
			scored = append(scored, scoredAgent{agent: agent, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ranked := make([]model.Agent, len(scored))
	for i, sa := range scored {
		ranked[i] = sa.agent
	}
	return ranked
}

// scoreAgent computes the relevance score of one agent for the query and its
// derived intent. Contributions accumulate uncapped; the total is clamped to 1.0.
func (s *Service) scoreAgent(agent model.Agent, query string, intent Intent) float64 {
	score := 0.0

	queryLower := strings.ToLower(query)
	nameLower := strings.ToLower(agent.Name)
	shortLower := strings.ToLower(agent.ShortDesc)
	longLower := strings.ToLower(agent.LongDesc)
	creatorLower := strings.ToLower(agent.Creator)

	// Fuzzy partial match of the whole query against the agent's combined text.
	agentText := strings.ToLower(strings.Join([]string{
		agent.Name, agent.ShortDesc, agent.LongDesc,
		agent.Domains, agent.UseCases, agent.Creator,
	}, " "))
	if strings.TrimSpace(agentText) != "" {
		score += fuzzy.PartialRatio(queryLower, agentText) * fuzzyTextWeight
	}

	// Facet-intent bonuses: each matched vocabulary label that is fuzzy-similar
	// to one of the agent's tokens contributes its bonus.
	for _, domain := range intent.Domains {
		if anySimilar(domain, agent.DomainList, facetSimilarityFloor) {
			score += domainBonus
		}
	}
	for _, platform := range intent.Platforms {
		if anySimilar(platform, agent.PlatformList, facetSimilarityFloor) {
			score += platformBonus
		}
	}
	for _, pricing := range intent.Pricing {
		if fuzzy.Ratio(strings.ToLower(pricing), strings.ToLower(agent.PricingClean)) > facetSimilarityFloor {
			score += pricingBonus
		}
	}

	// Content-keyword hits in the agent's text fields, tiered by field weight.
	for _, keyword := range intent.Keywords {
		if strings.Contains(nameLower, keyword) {
			score += keywordNameBonus
		}
		if strings.Contains(shortLower, keyword) {
			score += keywordShortBonus
		}
		if strings.Contains(longLower, keyword) {
			score += keywordLongBonus
		}
	}

	// Creator match is a single bonus regardless of how many keywords hit.
	for _, keyword := range intent.Keywords {
		if strings.Contains(creatorLower, keyword) {
			score += creatorBonus
			break
		}
	}

	// Use-case partial-fuzzy hits accumulate per keyword/token pair.
	for _, keyword := range intent.Keywords {
		for _, useCase := range agent.UseCaseList {
			if fuzzy.PartialRatio(keyword, strings.ToLower(useCase)) > useCaseSimilarityFloor {
				score += useCaseBonus
			}
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// anySimilar reports whether label is fuzzy-similar (above floor) to any token.
func anySimilar(label string, tokens []string, floor float64) bool {
	labelLower := strings.ToLower(label)
	for _, token := range tokens {
		if fuzzy.Ratio(labelLower, strings.ToLower(token)) > floor {
			return true
		}
	}
	return false
}
