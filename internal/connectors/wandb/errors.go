package wandb

import (
	"errors"
	"fmt"
)

// Connector-specific errors.
var (
	// ErrProjectNotFound indicates the team/project scope does not
	// exist or is not visible to the authenticated user.
	ErrProjectNotFound = errors.New("wandb: project not found")

	// ErrUnauthorized indicates a missing or invalid API key.
	ErrUnauthorized = errors.New("wandb: unauthorised (invalid API key)")
)

// APIError represents a failed API response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wandb: API error %d: %s", e.StatusCode, e.Message)
}

// GraphQLError represents an error returned inside a GraphQL response
// body alongside a 200 status.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	if len(e.Messages) == 1 {
		return "wandb: " + e.Messages[0]
	}
	return fmt.Sprintf("wandb: %d errors, first: %s", len(e.Messages), e.Messages[0])
}

// IsNotFound checks if the error indicates a missing project.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProjectNotFound)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}
