package model

import (
	"strings"
	"time"
)

// AnonymousSubmitter is recorded when a rating arrives without an identifier.
const AnonymousSubmitter = "anonymous"

// Rating is one user-submitted star rating for an agent, optionally carrying
// free-text feedback. Ratings are append-only: once recorded they are never
// edited or deleted.
type Rating struct {
	ID        string    `json:"id"`
	AgentSlug string    `json:"agent_slug"`
	Score     int       `json:"rating"`
	Feedback  string    `json:"feedback"`
	Timestamp time.Time `json:"timestamp"`
	Submitter string    `json:"user_identifier"`
}

// HasFeedback reports whether the rating carries non-empty feedback text.
func (r Rating) HasFeedback() bool {
	return strings.TrimSpace(r.Feedback) != ""
}
