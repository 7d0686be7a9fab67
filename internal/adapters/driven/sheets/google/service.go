package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	googleauth "golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ng-youn/runsheet/internal/core/domain"
	"github.com/ng-youn/runsheet/internal/logger"
)

// DefaultAppendPause is how long the writer waits after a batch append
// to respect the API's write quota.
const DefaultAppendPause = time.Second

// Scopes required for reading and writing spreadsheets and resolving
// them by name.
var scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveScope,
}

// Service is an authenticated Sheets + Drive client pair, held for the
// process lifetime and reused across sync cycles.
type Service struct {
	sheets      *sheets.Service
	drive       *drive.Service
	limiter     *RateLimiter
	appendPause time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithAppendPause overrides the post-append pause. Tests use zero.
func WithAppendPause(d time.Duration) Option {
	return func(s *Service) { s.appendPause = d }
}

// NewService authenticates to Google with the service-account key file
// at credentialsFile. The file must exist and parse as a service
// account key before any network call is made; failures there are
// configuration errors, authentication failures are sheet errors.
func NewService(ctx context.Context, credentialsFile string, opts ...Option) (*Service, error) {
	keyData, err := readServiceAccountKey(credentialsFile)
	if err != nil {
		return nil, err
	}

	logger.Debug("Authorising with service account key %s", credentialsFile)

	sheetsSvc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(keyData), option.WithScopes(scopes...))
	if err != nil {
		return nil, fmt.Errorf("%w: authenticate sheets service: %w", domain.ErrSheet, err)
	}

	driveSvc, err := drive.NewService(ctx,
		option.WithCredentialsJSON(keyData), option.WithScopes(scopes...))
	if err != nil {
		return nil, fmt.Errorf("%w: authenticate drive service: %w", domain.ErrSheet, err)
	}

	s := &Service{
		sheets:      sheetsSvc,
		drive:       driveSvc,
		limiter:     NewRateLimiter(),
		appendPause: DefaultAppendPause,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// readServiceAccountKey loads and validates the key file locally.
func readServiceAccountKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: service account key file not found: %s", domain.ErrConfig, path)
		}
		return nil, fmt.Errorf("%w: read service account key %s: %w", domain.ErrConfig, path, err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON in service account key %s: %w", domain.ErrConfig, path, err)
	}

	// Verify the key has service-account shape (client_email,
	// private_key) before handing it to the API client.
	if _, err := googleauth.JWTConfigFromJSON(data, scopes...); err != nil {
		return nil, fmt.Errorf("%w: invalid service account key %s: %w", domain.ErrConfig, path, err)
	}

	return data, nil
}

// OpenSpreadsheet resolves a spreadsheet by its document title via
// Drive and returns a handle to it.
func (s *Service) OpenSpreadsheet(ctx context.Context, name string) (*Spreadsheet, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	query := fmt.Sprintf(
		"name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false",
		name)
	list, err := s.drive.Files.List().
		Q(query).
		Fields("files(id, name)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapError("open spreadsheet", err)
	}
	if len(list.Files) == 0 {
		return nil, fmt.Errorf("%w: spreadsheet %q not found", domain.ErrSheet, name)
	}

	logger.Debug("Resolved spreadsheet %q to %s", name, list.Files[0].Id)
	return &Spreadsheet{svc: s, id: list.Files[0].Id, name: name}, nil
}
