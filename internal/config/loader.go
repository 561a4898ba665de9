package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default seed-file name.
const DefaultConfigFile = ".mailsift"

// ErrConfigNotFound is returned when the seed file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk YAML configuration. It exists so the fast-mode seed
// table stays editable data instead of inline logic.
//
// Example:
//
//	fast_seeds:
//	  - /contact
//	  - /kontakt
//	  - /imprint
//	user_agent: "mailsift/1.0 (ops@example.org)"
type File struct {
	// FastSeeds replaces the built-in fast-mode seed paths when non-empty.
	FastSeeds []string `yaml:"fast_seeds"`

	// UserAgent replaces the default User-Agent when non-empty.
	UserAgent string `yaml:"user_agent"`

	// RequestsPerSecond replaces the default aggregate rate cap when positive.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// LoadConfigFile loads overrides from a YAML file.
// If the file does not exist it returns ErrConfigNotFound; callers decide
// whether that matters based on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the seed file in order:
//  1. the explicit path, when given
//  2. .mailsift in the current directory
//  3. .mailsift in the user's home directory
//  4. the XDG config directory
//
// Returns the path if found, or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), DefaultConfigFile))

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Apply copies the file's non-empty overrides onto cfg.
func (f *File) Apply(cfg *Config) {
	if f == nil {
		return
	}
	if len(f.FastSeeds) > 0 {
		cfg.FastSeeds = f.FastSeeds
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = f.RequestsPerSecond
	}
}
