package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/ng-youn/runsheet/internal/core/domain"
)

// wrapError folds a Google API error into the sheet error category,
// preserving the cause for errors.Is/As inspection.
func wrapError(operation string, err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("%w: %s: %w", domain.ErrSheet, operation, err)
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s: unauthorised (invalid credentials): %w", domain.ErrSheet, operation, err)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s: forbidden (insufficient permissions): %w", domain.ErrSheet, operation, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s: not found: %w", domain.ErrSheet, operation, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s: rate limit exceeded: %w", domain.ErrSheet, operation, err)
	default:
		return fmt.Errorf("%w: %s: %w", domain.ErrSheet, operation, err)
	}
}

// IsRateLimited returns true if the error is a 429 from the API.
func IsRateLimited(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests
}
