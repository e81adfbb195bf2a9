// Package catalog holds the in-memory agent catalog: loading from the CSV and
// user-submission collaborator stores, slug lookup, facet filtering, and the
// search+filter composition exposed to the API layer.
package catalog

import (
	stderrors "errors"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/agentdir/agent-directory/internal/errors"
	"github.com/agentdir/agent-directory/internal/persistence"
	"github.com/agentdir/agent-directory/internal/search"
	"github.com/agentdir/agent-directory/model"
)

// legitimacyUserSubmitted marks agents added through the submission endpoint;
// only these are persisted back to the user-agents JSON file.
const legitimacyUserSubmitted = "User Submitted"

// relatedAgentLimit caps how many related agents a detail view returns.
const relatedAgentLimit = 6

// Catalog is the explicitly constructed catalog object: it owns the loaded
// agents and the relevance engine. The catalog is read-mostly; the only
// mutation path is AddUserAgent, which serializes through a mutex.
type Catalog struct {
	mu             sync.RWMutex
	agents         []model.Agent
	searcher       *search.Service
	csvPath        string
	userAgentsPath string
	logger         *zap.Logger
}

// Options configures a Catalog.
type Options struct {
	CSVPath        string
	UserAgentsPath string
	Threshold      float64
	Logger         *zap.Logger
}

// New constructs a Catalog and loads it from the configured sources. A missing
// CSV or user-agents file is not fatal: the catalog starts empty or partial
// and the condition is logged.
func New(opts Options) *Catalog {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Catalog{
		searcher:       search.NewService(opts.Threshold),
		csvPath:        opts.CSVPath,
		userAgentsPath: opts.UserAgentsPath,
		logger:         logger,
	}
	c.Reload()
	return c
}

// Reload re-reads both collaborator stores and replaces the in-memory catalog.
func (c *Catalog) Reload() {
	agents := make([]model.Agent, 0)

	if c.csvPath != "" {
		fromCSV, err := loadAgentsCSV(c.csvPath, c.logger)
		if err != nil {
			c.logger.Error("failed to load agent CSV", zap.String("path", c.csvPath), zap.Error(err))
		} else {
			agents = append(agents, fromCSV...)
			c.logger.Info("loaded agents from CSV", zap.String("path", c.csvPath), zap.Int("count", len(fromCSV)))
		}
	}

	if c.userAgentsPath != "" {
		fromUsers, err := loadUserAgents(c.userAgentsPath)
		if err != nil {
			c.logger.Error("failed to load user agents", zap.String("path", c.userAgentsPath), zap.Error(err))
		} else if len(fromUsers) > 0 {
			agents = append(agents, fromUsers...)
			c.logger.Info("loaded user-submitted agents", zap.Int("count", len(fromUsers)))
		}
	}

	c.mu.Lock()
	c.agents = agents
	c.mu.Unlock()
}

// All returns a copy of the full agent list in catalog order.
func (c *Catalog) All() []model.Agent {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Agent, len(c.agents))
	copy(out, c.agents)
	return out
}

// Count returns the number of agents in the catalog.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.agents)
}

// GetBySlug looks an agent up by its slug. The first entry wins when two
// names normalize to the same slug. A miss is reported as an
// AgentNotFoundError, distinct from any empty-result condition.
func (c *Catalog) GetBySlug(slug string) (model.Agent, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, agent := range c.agents {
		if agent.Slug == slug {
			return agent, nil
		}
	}
	return model.Agent{}, errors.NewAgentNotFoundError(slug)
}

// Search ranks the catalog against the optional free-text query and then
// narrows by the given filter criteria. With an empty query the catalog order
// is preserved; with a query, ranking order is preserved through filtering.
func (c *Catalog) Search(query string, filters Filters) []model.Agent {
	results := c.All()

	if strings.TrimSpace(query) != "" {
		results = c.searcher.Rank(results, query)
	}

	return applyFilters(results, filters)
}

// Related returns up to 6 other agents sharing the given agent's primary
// domain or primary use case, in catalog order.
func (c *Catalog) Related(agent model.Agent) []model.Agent {
	c.mu.RLock()
	defer c.mu.RUnlock()

	related := make([]model.Agent, 0, relatedAgentLimit)
	for _, other := range c.agents {
		if other.Slug == agent.Slug {
			continue
		}
		if other.PrimaryDomain == agent.PrimaryDomain || other.PrimaryUseCase == agent.PrimaryUseCase {
			related = append(related, other)
			if len(related) == relatedAgentLimit {
				break
			}
		}
	}
	return related
}

// AddUserAgent validates and appends a user-submitted agent. The user-agent
// subset is persisted before the in-memory list is mutated, so a persistence
// failure leaves the catalog unchanged.
func (c *Catalog) AddUserAgent(raw model.RawAgent) (model.Agent, error) {
	if strings.TrimSpace(raw.Name) == "" {
		return model.Agent{}, errors.NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(raw.ShortDesc) == "" {
		return model.Agent{}, errors.NewValidationError("short_desc", "short description is required")
	}

	// Submission defaults mirror the public form.
	if strings.TrimSpace(raw.Creator) == "" {
		raw.Creator = legitimacyUserSubmitted
	}
	if strings.TrimSpace(raw.Platform) == "" {
		raw.Platform = "Web"
	}
	if strings.TrimSpace(raw.Pricing) == "" {
		raw.Pricing = "Unknown"
	}
	raw.Legitimacy = legitimacyUserSubmitted

	agent := model.NewAgent(raw)
	if agent.Slug == "" {
		return model.Agent{}, errors.NewValidationError("name", "name must contain at least one alphanumeric character")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	userAgents := make([]model.RawAgent, 0)
	for _, existing := range c.agents {
		if existing.Legitimacy == legitimacyUserSubmitted {
			userAgents = append(userAgents, existing.Raw())
		}
	}
	userAgents = append(userAgents, agent.Raw())

	if err := persistence.SaveJSON(c.userAgentsPath, userAgents); err != nil {
		c.logger.Error("failed to persist user agents", zap.String("path", c.userAgentsPath), zap.Error(err))
		return model.Agent{}, err
	}

	c.agents = append(c.agents, agent)
	c.logger.Info("added user-submitted agent", zap.String("slug", agent.Slug))
	return agent, nil
}

// loadUserAgents reads the user-submitted agents JSON file. A missing file is
// a fresh start, not an error.
func loadUserAgents(path string) ([]model.Agent, error) {
	var raws []model.RawAgent
	if err := persistence.LoadJSON(path, &raws); err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	agents := make([]model.Agent, 0, len(raws))
	for _, raw := range raws {
		agents = append(agents, model.NewAgent(raw))
	}
	return agents, nil
}
