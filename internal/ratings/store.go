// Package ratings holds the append-only rating log and its aggregations:
// per-agent summaries, top-rated ranking, and the recent review feed.
package ratings

import (
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agentdir/agent-directory/internal/errors"
	"github.com/agentdir/agent-directory/model"
)

// recentReviewLimit caps the per-agent recent review list in summaries.
const recentReviewLimit = 5

// Backend durably stores the full rating log. The log is append-only, so a
// backend may persist incrementally as long as LoadAll returns every rating
// in submission order.
type Backend interface {
	LoadAll() ([]model.Rating, error)
	PersistAll(ratings []model.Rating) error
}

// Store is the in-memory rating log plus its durable backend. Writes are
// serialized through a mutex and persisted before the in-memory log is
// mutated, so a persistence failure leaves aggregates unchanged.
type Store struct {
	mu      sync.Mutex
	ratings []model.Rating
	backend Backend
	logger  *zap.Logger
}

// Summary is the aggregation payload for one agent.
type Summary struct {
	AgentSlug     string         `json:"agent_slug"`
	AverageRating float64        `json:"average_rating"`
	TotalRatings  int            `json:"total_ratings"`
	Breakdown     map[int]int    `json:"rating_breakdown"`
	RecentReviews []model.Rating `json:"recent_reviews"`
}

// TopAgent is one entry in the top-rated ranking.
type TopAgent struct {
	AgentSlug     string  `json:"agent_slug"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

// NewStore constructs a Store and loads the existing log from the backend.
// A missing store file is a fresh start, not an error.
func NewStore(backend Backend, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	existing, err := backend.LoadAll()
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing = make([]model.Rating, 0)
	}
	logger.Info("loaded rating log", zap.Int("count", len(existing)))

	return &Store{
		ratings: existing,
		backend: backend,
		logger:  logger,
	}, nil
}

// AddRating validates and appends one rating. Scores outside 1..5 are
// rejected with an InvalidRatingError; a blank submitter is recorded as
// anonymous. The log is persisted before the in-memory copy changes.
func (s *Store) AddRating(agentSlug string, score int, feedback, submitter string) (model.Rating, error) {
	if score < 1 || score > 5 {
		return model.Rating{}, errors.NewInvalidRatingError(score)
	}

	if strings.TrimSpace(submitter) == "" {
		submitter = model.AnonymousSubmitter
	}

	rating := model.Rating{
		ID:        uuid.NewString(),
		AgentSlug: agentSlug,
		Score:     score,
		Feedback:  strings.TrimSpace(feedback),
		Timestamp: time.Now().UTC(),
		Submitter: submitter,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Rating, len(s.ratings), len(s.ratings)+1)
	copy(next, s.ratings)
	next = append(next, rating)

	if err := s.backend.PersistAll(next); err != nil {
		s.logger.Error("failed to persist rating log", zap.Error(err))
		return model.Rating{}, err
	}

	s.ratings = next
	s.logger.Info("recorded rating",
		zap.String("agent_slug", agentSlug),
		zap.Int("score", score),
		zap.Bool("has_feedback", rating.HasFeedback()),
	)
	return rating, nil
}

// AgentRatings aggregates the log for one agent. An agent with no ratings
// gets a zero summary, not an error; the breakdown always carries all five
// score buckets.
func (s *Store) AgentRatings(agentSlug string) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := Summary{
		AgentSlug:     agentSlug,
		Breakdown:     emptyBreakdown(),
		RecentReviews: make([]model.Rating, 0, recentReviewLimit),
	}

	sum := 0
	for _, r := range s.ratings {
		if r.AgentSlug != agentSlug {
			continue
		}
		summary.TotalRatings++
		summary.Breakdown[r.Score]++
		sum += r.Score
	}
	if summary.TotalRatings > 0 {
		summary.AverageRating = roundAverage(sum, summary.TotalRatings)
	}

	// The log is append-only, so walking it backwards yields newest first.
	for i := len(s.ratings) - 1; i >= 0 && len(summary.RecentReviews) < recentReviewLimit; i-- {
		r := s.ratings[i]
		if r.AgentSlug == agentSlug && r.HasFeedback() {
			summary.RecentReviews = append(summary.RecentReviews, r)
		}
	}

	return summary
}

// TopRated ranks agents by rounded average score, then rating count, then
// slug for a stable order. Agents with fewer than minRatings ratings are
// excluded; limit <= 0 means no limit.
func (s *Store) TopRated(minRatings, limit int) []TopAgent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if minRatings < 1 {
		minRatings = 1
	}

	type bucket struct {
		sum   int
		count int
	}
	buckets := make(map[string]*bucket)
	for _, r := range s.ratings {
		b, ok := buckets[r.AgentSlug]
		if !ok {
			b = &bucket{}
			buckets[r.AgentSlug] = b
		}
		b.sum += r.Score
		b.count++
	}

	top := make([]TopAgent, 0, len(buckets))
	for slug, b := range buckets {
		if b.count < minRatings {
			continue
		}
		top = append(top, TopAgent{
			AgentSlug:     slug,
			AverageRating: roundAverage(b.sum, b.count),
			TotalRatings:  b.count,
		})
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].AverageRating != top[j].AverageRating {
			return top[i].AverageRating > top[j].AverageRating
		}
		if top[i].TotalRatings != top[j].TotalRatings {
			return top[i].TotalRatings > top[j].TotalRatings
		}
		return top[i].AgentSlug < top[j].AgentSlug
	})

	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}
	return top
}

// RecentReviews returns the newest ratings that carry feedback, across all
// agents. limit <= 0 means no limit.
func (s *Store) RecentReviews(limit int) []model.Rating {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews := make([]model.Rating, 0)
	for i := len(s.ratings) - 1; i >= 0; i-- {
		if !s.ratings[i].HasFeedback() {
			continue
		}
		reviews = append(reviews, s.ratings[i])
		if limit > 0 && len(reviews) == limit {
			break
		}
	}
	return reviews
}

// Count returns the total number of ratings in the log.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ratings)
}

// roundAverage computes sum/count rounded to one decimal place, the display
// precision used everywhere ratings surface.
func roundAverage(sum, count int) float64 {
	return math.Round(float64(sum)/float64(count)*10) / 10
}

func emptyBreakdown() map[int]int {
	return map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
}
