// Package api exposes the agent directory over HTTP: catalog browsing and
// search, agent detail with structured data, user submissions, and ratings.
package api

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agentdir/agent-directory/internal/catalog"
	"github.com/agentdir/agent-directory/internal/errors"
	"github.com/agentdir/agent-directory/internal/ratings"
	"github.com/agentdir/agent-directory/model"
)

const (
	// maxRequestBodySize caps submission and rating payloads.
	maxRequestBodySize = 1 << 20 // 1 MB

	defaultTopRatedLimit      = 10
	defaultRecentReviewsLimit = 10
)

// API holds dependencies for API handlers: the catalog and the rating store.
type API struct {
	catalog     *catalog.Catalog
	ratings     *ratings.Store
	minTopRated int
	logger      *zap.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(cat *catalog.Catalog, store *ratings.Store, minTopRated int, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	if minTopRated < 1 {
		minTopRated = 1
	}
	return &API{
		catalog:     cat,
		ratings:     store,
		minTopRated: minTopRated,
		logger:      logger,
	}
}

// SetupRoutes defines all the API routes for the agent directory.
func SetupRoutes(router *gin.Engine, apiHandler *API) {
	router.Use(CORSMiddleware())
	router.Use(RequestSizeLimitMiddleware(maxRequestBodySize))

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/filters", apiHandler.GetFilterOptionsHandler)
		apiRoutes.GET("/ratings/top", apiHandler.TopRatedHandler)
		apiRoutes.GET("/reviews/recent", apiHandler.RecentReviewsHandler)

		agentRoutes := apiRoutes.Group("/agents")
		{
			agentRoutes.GET("", apiHandler.ListAgentsHandler)          // Search and filter the catalog
			agentRoutes.POST("", apiHandler.CreateAgentHandler)        // Submit a new agent
			agentRoutes.GET("/:slug", apiHandler.GetAgentHandler)      // Agent detail with related agents
			agentRoutes.POST("/:slug/ratings", apiHandler.AddRatingHandler)
			agentRoutes.GET("/:slug/ratings", apiHandler.GetAgentRatingsHandler)
		}
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"service":     "agent-directory",
		"agent_count": api.catalog.Count(),
		"timestamp":   fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// ListAgentsHandler searches and filters the catalog. All parameters are
// optional query parameters; with none set the full catalog is returned.
func (api *API) ListAgentsHandler(c *gin.Context) {
	query := c.Query("q")
	filters := catalog.Filters{
		Domain:   c.Query("domain"),
		UseCase:  c.Query("use_case"),
		Platform: c.Query("platform"),
		Pricing:  c.Query("pricing"),
		Model:    c.Query("model"),
		Creator:  c.Query("creator"),
	}

	results := api.catalog.Search(query, filters)

	c.JSON(http.StatusOK, gin.H{
		"agents": results,
		"total":  len(results),
		"query":  query,
	})
}

// GetAgentHandler returns one agent with its related agents, rating summary,
// and schema.org structured data.
func (api *API) GetAgentHandler(c *gin.Context) {
	slug := c.Param("slug")

	agent, err := api.catalog.GetBySlug(slug)
	if err != nil {
		SendAgentNotFoundError(c, slug)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"agent":   agent,
		"related": api.catalog.Related(agent),
		"ratings": api.ratings.AgentRatings(agent.Slug),
		"json_ld": agent.JSONLD(),
	})
}

// CreateAgentHandler handles user submissions of new agents.
// Request Body: model.RawAgent
func (api *API) CreateAgentHandler(c *gin.Context) {
	var raw model.RawAgent
	if err := c.ShouldBindJSON(&raw); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	agent, err := api.catalog.AddUserAgent(raw)
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidInput) {
			SendValidationError(c, err)
			return
		}
		api.logger.Error("agent submission failed", zap.Error(err))
		SendPersistenceError(c, "agent submission", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Agent '" + agent.Name + "' submitted successfully",
		"agent":   agent,
	})
}

// GetFilterOptionsHandler returns the distinct facet values of the catalog.
func (api *API) GetFilterOptionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.catalog.FilterOptions())
}

// RatingRequest defines the structure for rating submissions.
type RatingRequest struct {
	Rating    int    `json:"rating"`
	Feedback  string `json:"feedback"`
	Submitter string `json:"user_identifier"`
}

// AddRatingHandler records a rating for an agent.
// Request Body: RatingRequest
func (api *API) AddRatingHandler(c *gin.Context) {
	slug := c.Param("slug")

	agent, err := api.catalog.GetBySlug(slug)
	if err != nil {
		SendAgentNotFoundError(c, slug)
		return
	}

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	rating, err := api.ratings.AddRating(agent.Slug, req.Rating, req.Feedback, req.Submitter)
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidRating) {
			SendInvalidRatingError(c, err)
			return
		}
		api.logger.Error("rating submission failed", zap.String("slug", slug), zap.Error(err))
		SendPersistenceError(c, "rating", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Rating recorded",
		"rating":  rating,
	})
}

// GetAgentRatingsHandler returns the aggregated ratings for an agent.
func (api *API) GetAgentRatingsHandler(c *gin.Context) {
	slug := c.Param("slug")

	agent, err := api.catalog.GetBySlug(slug)
	if err != nil {
		SendAgentNotFoundError(c, slug)
		return
	}

	c.JSON(http.StatusOK, api.ratings.AgentRatings(agent.Slug))
}

// TopRatedHandler returns the best-rated agents.
// Query parameters: min (minimum rating count), limit.
func (api *API) TopRatedHandler(c *gin.Context) {
	minRatings, err := queryInt(c, "min", api.minTopRated)
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, err.Error())
		return
	}
	limit, err := queryInt(c, "limit", defaultTopRatedLimit)
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, err.Error())
		return
	}

	top := api.ratings.TopRated(minRatings, limit)

	// Enrich with agent names where the slug is still in the catalog.
	type topEntry struct {
		ratings.TopAgent
		Name string `json:"name,omitempty"`
	}
	entries := make([]topEntry, 0, len(top))
	for _, t := range top {
		entry := topEntry{TopAgent: t}
		if agent, err := api.catalog.GetBySlug(t.AgentSlug); err == nil {
			entry.Name = agent.Name
		}
		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"agents": entries,
		"total":  len(entries),
	})
}

// RecentReviewsHandler returns the newest ratings with feedback across all agents.
// Query parameters: limit.
func (api *API) RecentReviewsHandler(c *gin.Context) {
	limit, err := queryInt(c, "limit", defaultRecentReviewsLimit)
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, err.Error())
		return
	}

	reviews := api.ratings.RecentReviews(limit)
	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// queryInt parses an optional integer query parameter.
func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter '%s' must be an integer", name)
	}
	return value, nil
}
