// Package settings holds the fixed locations and API parameters used by the
// tool, with optional overrides from a YAML file.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is looked up in the working directory when no settings file
	// is named explicitly.
	DefaultFile = ".letter.yaml"

	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 4096
	maxTokensCeiling = 64000

	globalConfigDirName = "letter-for-my-future-self"
)

// Settings is the full set of knobs.
type Settings struct {
	Paths       PathsConfig       `yaml:"paths"`
	Credentials CredentialsConfig `yaml:"credentials"`
	API         APIConfig         `yaml:"api"`
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	if err := s.Paths.Validate(); err != nil {
		return fmt.Errorf("paths: %w", err)
	}
	if err := s.Credentials.Validate(); err != nil {
		return fmt.Errorf("credentials: %w", err)
	}
	if err := s.API.Validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

// PathsConfig locates the input notes and the generated drafts.
type PathsConfig struct {
	MemoryDir string `yaml:"memory_dir"`
	DraftsDir string `yaml:"drafts_dir"`
}

// Validate validates the path configuration.
func (c *PathsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MemoryDir, validation.Required),
		validation.Field(&c.DraftsDir, validation.Required),
	)
}

// CredentialsConfig names the three credential tiers.
type CredentialsConfig struct {
	EnvVar        string `yaml:"env_var"`
	ProjectConfig string `yaml:"project_config"`
	GlobalConfig  string `yaml:"global_config"`
}

// Validate validates the credential locations.
func (c *CredentialsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.EnvVar, validation.Required),
		validation.Field(&c.ProjectConfig, validation.Required),
		validation.Field(&c.GlobalConfig, validation.Required),
	)
}

// APIConfig holds the Messages API request parameters.
type APIConfig struct {
	Model     string `yaml:"model"`
	MaxTokens int64  `yaml:"max_tokens"`
}

// Validate validates the API configuration.
func (c *APIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.MaxTokens, validation.Required, validation.Min(int64(1)), validation.Max(int64(maxTokensCeiling))),
	)
}

// NewDefault returns the settings used when no file overrides them.
func NewDefault() *Settings {
	return &Settings{
		Paths: PathsConfig{
			MemoryDir: ".memory",
			DraftsDir: "drafts",
		},
		Credentials: CredentialsConfig{
			EnvVar:        "ANTHROPIC_API_KEY",
			ProjectConfig: ".letter-config.json",
			GlobalConfig:  DefaultGlobalConfigPath(),
		},
		API: APIConfig{
			Model:     DefaultModel,
			MaxTokens: DefaultMaxTokens,
		},
	}
}

// DefaultGlobalConfigPath returns config.json under $XDG_CONFIG_HOME, or under
// ~/.config when that is unset.
func DefaultGlobalConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, globalConfigDirName, "config.json")
}

// Load reads filename over the defaults, expanding ${VAR} references first.
// With explicit false, a missing filename yields the defaults.
func Load(filename string, explicit bool) (*Settings, error) {
	s := NewDefault()
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings file %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", filename, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return s, nil
}
