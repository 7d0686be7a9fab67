// Package file loads sync settings from a local configuration file.
// JSON is the default format; files ending in .toml are parsed as TOML.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ng-youn/runsheet/internal/core/domain"
)

// settingsFile is the on-disk shape of the configuration file. Key names
// are shared between the JSON and TOML forms.
type settingsFile struct {
	CredentialsFile string   `json:"GCP_JSON" toml:"GCP_JSON"`
	Headers         []string `json:"FIXED_HEADERS" toml:"FIXED_HEADERS"`
	Team            string   `json:"TEAM_NAME" toml:"TEAM_NAME"`
	Project         string   `json:"PROJECT_NAME" toml:"PROJECT_NAME"`
}

// Load reads, parses, and validates the configuration file at path.
// All failures are configuration errors.
func Load(path string) (*domain.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: config file not found: %s", domain.ErrConfig, path)
		}
		return nil, fmt.Errorf("%w: read config file %s: %w", domain.ErrConfig, path, err)
	}

	var sf settingsFile
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &sf); err != nil {
			return nil, fmt.Errorf("%w: invalid TOML in %s: %w", domain.ErrConfig, path, err)
		}
	} else {
		if err := json.Unmarshal(data, &sf); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON in %s: %w", domain.ErrConfig, path, err)
		}
	}

	settings := &domain.Settings{
		CredentialsFile: sf.CredentialsFile,
		Headers:         sf.Headers,
		Scope: domain.Scope{
			Team:    sf.Team,
			Project: sf.Project,
		},
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}
