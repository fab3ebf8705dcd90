package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sahanamn290/github-analysis/internal/constants"
	"gopkg.in/yaml.v3"
)

const appName = "github-analysis"

// Config represents the application configuration
type Config struct {
	DefaultFormat string `yaml:"default_format,omitempty"`

	// Top-level config sections
	GitHub  *GitHubConfig  `yaml:"github,omitempty"`
	AI      *AIConfig      `yaml:"ai,omitempty"`
	Suggest *SuggestConfig `yaml:"suggest,omitempty"`
}

// GitHubConfig holds API connection settings. Tokens never live here.
type GitHubConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
}

// AIConfig holds persona generation settings
type AIConfig struct {
	Model    string `yaml:"model,omitempty"`
	MaxRepos *int   `yaml:"max_repos,omitempty"`
}

// SuggestConfig holds username suggestion settings
type SuggestConfig struct {
	DebounceMS *int `yaml:"debounce_ms,omitempty"`
	Limit      *int `yaml:"limit,omitempty"`
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(configDir, appName)
}

// ConfigPath returns the path to the global config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the working directory
func LocalConfigPath() string {
	return "." + appName + ".yaml"
}

// Load loads configuration from the global file and merges the local file on top.
func Load() (*Config, error) {
	return loadFrom(ConfigPath(), LocalConfigPath())
}

func loadFrom(globalPath, localPath string) (*Config, error) {
	cfg := &Config{
		DefaultFormat: "table",
	}

	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}

		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}

		cfg = mergeConfig(cfg, &localCfg)
	}

	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}

	return cfg, nil
}

// mergeConfig layers local over global; any field set locally wins.
func mergeConfig(global, local *Config) *Config {
	result := &Config{}

	if local.DefaultFormat != "" {
		result.DefaultFormat = local.DefaultFormat
	} else {
		result.DefaultFormat = global.DefaultFormat
	}

	result.GitHub = mergeGitHub(global.GitHub, local.GitHub)
	result.AI = mergeAI(global.AI, local.AI)
	result.Suggest = mergeSuggest(global.Suggest, local.Suggest)

	return result
}

func mergeGitHub(global, local *GitHubConfig) *GitHubConfig {
	if global == nil && local == nil {
		return nil
	}
	result := &GitHubConfig{}
	if global != nil {
		result.BaseURL = global.BaseURL
	}
	if local != nil && local.BaseURL != "" {
		result.BaseURL = local.BaseURL
	}
	if result.BaseURL == "" {
		return nil
	}
	return result
}

func mergeAI(global, local *AIConfig) *AIConfig {
	if global == nil && local == nil {
		return nil
	}
	result := &AIConfig{}

	if global != nil {
		result.Model = global.Model
		result.MaxRepos = global.MaxRepos
	}

	if local != nil {
		if local.Model != "" {
			result.Model = local.Model
		}
		if local.MaxRepos != nil {
			result.MaxRepos = local.MaxRepos
		}
	}

	if result.Model == "" && result.MaxRepos == nil {
		return nil
	}
	return result
}

func mergeSuggest(global, local *SuggestConfig) *SuggestConfig {
	if global == nil && local == nil {
		return nil
	}
	result := &SuggestConfig{}

	if global != nil {
		result.DebounceMS = global.DebounceMS
		result.Limit = global.Limit
	}

	if local != nil {
		if local.DebounceMS != nil {
			result.DebounceMS = local.DebounceMS
		}
		if local.Limit != nil {
			result.Limit = local.Limit
		}
	}

	if result.DebounceMS == nil && result.Limit == nil {
		return nil
	}
	return result
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configDir := DefaultConfigDir()

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN environment variable.
// Tokens are only read from the environment.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// BaseURL returns the GitHub REST API root.
func (c *Config) BaseURL() string {
	if c.GitHub != nil && strings.TrimSpace(c.GitHub.BaseURL) != "" {
		return strings.TrimSpace(c.GitHub.BaseURL)
	}
	return constants.DefaultGitHubBaseURL
}

// PersonaModel returns the generative model name.
func (c *Config) PersonaModel() string {
	if c.AI != nil && strings.TrimSpace(c.AI.Model) != "" {
		return strings.TrimSpace(c.AI.Model)
	}
	return constants.DefaultPersonaModel
}

// MaxRepos returns how many repositories feed the persona prompt, clamped to 1..PersonaMaxRepos.
func (c *Config) MaxRepos() int {
	if c.AI == nil || c.AI.MaxRepos == nil {
		return constants.PersonaMaxRepos
	}
	n := *c.AI.MaxRepos
	if n < 1 || n > constants.PersonaMaxRepos {
		return constants.PersonaMaxRepos
	}
	return n
}

// DebounceDuration returns the quiet period before a suggestion search fires.
func (c *Config) DebounceDuration() time.Duration {
	if c.Suggest == nil || c.Suggest.DebounceMS == nil || *c.Suggest.DebounceMS < 0 {
		return constants.SuggestDebounce
	}
	return time.Duration(*c.Suggest.DebounceMS) * time.Millisecond
}

// SuggestLimit returns how many suggestions a search requests.
func (c *Config) SuggestLimit() int {
	if c.Suggest == nil || c.Suggest.Limit == nil {
		return constants.SuggestLimit
	}
	n := *c.Suggest.Limit
	if n < 1 || n > 100 {
		return constants.SuggestLimit
	}
	return n
}

// DefaultConfig returns a fully populated config with all default values.
// This is useful for generating a complete config file template.
func DefaultConfig() *Config {
	maxRepos := constants.PersonaMaxRepos
	debounce := int(constants.SuggestDebounce / time.Millisecond)
	limit := constants.SuggestLimit

	return &Config{
		DefaultFormat: "table",
		GitHub: &GitHubConfig{
			BaseURL: constants.DefaultGitHubBaseURL,
		},
		AI: &AIConfig{
			Model:    constants.DefaultPersonaModel,
			MaxRepos: &maxRepos,
		},
		Suggest: &SuggestConfig{
			DebounceMS: &debounce,
			Limit:      &limit,
		},
	}
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# github-analysis configuration file
# See: github-analysis config defaults  (for all available options)

# Output format: table, json or markdown
default_format: table

# GitHub Enterprise API root (optional)
# github:
#   base_url: https://github.example.com/api/v3/

# Persona generation (optional). The API key is read from
# GEMINI_API_KEY or GOOGLE_API_KEY.
# ai:
#   model: gemini-2.5-flash
#   max_repos: 20

# Username suggestions (optional)
# suggest:
#   debounce_ms: 300
#   limit: 6
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
