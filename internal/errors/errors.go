package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrAgentNotFound is returned when no agent matches a requested slug
	ErrAgentNotFound = errors.New("agent not found")

	// ErrInvalidRating is returned when a rating score is outside the 1-5 range
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// AgentNotFoundError represents an agent lookup miss with context.
// It is distinct from an empty search result: the slug has no catalog entry at all.
type AgentNotFoundError struct {
	Slug string
}

func (e *AgentNotFoundError) Error() string {
	return fmt.Sprintf("agent with slug '%s' not found", e.Slug)
}

func (e *AgentNotFoundError) Is(target error) bool {
	return target == ErrAgentNotFound
}

// NewAgentNotFoundError creates a new AgentNotFoundError
func NewAgentNotFoundError(slug string) *AgentNotFoundError {
	return &AgentNotFoundError{Slug: slug}
}

// InvalidRatingError represents a rating score outside the accepted 1-5 range
type InvalidRatingError struct {
	Score int
}

func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("rating score %d is outside the valid range 1-5", e.Score)
}

func (e *InvalidRatingError) Is(target error) bool {
	return target == ErrInvalidRating
}

// NewInvalidRatingError creates a new InvalidRatingError
func NewInvalidRatingError(score int) *InvalidRatingError {
	return &InvalidRatingError{Score: score}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
