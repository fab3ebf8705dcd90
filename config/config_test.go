package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func intPtr(n int) *int { return &n }

func TestAccessorDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.BaseURL(); got != "https://api.github.com/" {
		t.Errorf("expected default base URL, got %q", got)
	}
	if got := cfg.PersonaModel(); got != "gemini-2.5-flash" {
		t.Errorf("expected default model, got %q", got)
	}
	if got := cfg.MaxRepos(); got != 20 {
		t.Errorf("expected 20 max repos, got %d", got)
	}
	if got := cfg.DebounceDuration(); got != 300*time.Millisecond {
		t.Errorf("expected 300ms debounce, got %v", got)
	}
	if got := cfg.SuggestLimit(); got != 6 {
		t.Errorf("expected limit 6, got %d", got)
	}
}

func TestMaxRepos(t *testing.T) {
	tests := []struct {
		name string
		set  *int
		want int
	}{
		{"unset", nil, 20},
		{"within range", intPtr(5), 5},
		{"upper bound", intPtr(20), 20},
		{"above cap", intPtr(50), 20},
		{"zero", intPtr(0), 20},
		{"negative", intPtr(-3), 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AI: &AIConfig{MaxRepos: tt.set}}
			if got := cfg.MaxRepos(); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestSuggestSettings(t *testing.T) {
	cfg := &Config{Suggest: &SuggestConfig{DebounceMS: intPtr(0), Limit: intPtr(10)}}
	if got := cfg.DebounceDuration(); got != 0 {
		t.Errorf("expected zero debounce to be honored, got %v", got)
	}
	if got := cfg.SuggestLimit(); got != 10 {
		t.Errorf("expected limit 10, got %d", got)
	}

	cfg = &Config{Suggest: &SuggestConfig{DebounceMS: intPtr(-1), Limit: intPtr(1000)}}
	if got := cfg.DebounceDuration(); got != 300*time.Millisecond {
		t.Errorf("expected default for negative debounce, got %v", got)
	}
	if got := cfg.SuggestLimit(); got != 6 {
		t.Errorf("expected default for out-of-range limit, got %d", got)
	}
}

func TestBaseURLTrimmed(t *testing.T) {
	cfg := &Config{GitHub: &GitHubConfig{BaseURL: "  https://ghe.example.com/api/v3/ "}}
	if got := cfg.BaseURL(); got != "https://ghe.example.com/api/v3/" {
		t.Errorf("expected trimmed base URL, got %q", got)
	}
}

func TestMergeConfig(t *testing.T) {
	global := &Config{
		DefaultFormat: "json",
		GitHub:        &GitHubConfig{BaseURL: "https://ghe.example.com/api/v3/"},
		AI:            &AIConfig{Model: "gemini-a", MaxRepos: intPtr(10)},
		Suggest:       &SuggestConfig{DebounceMS: intPtr(200)},
	}
	local := &Config{
		AI:      &AIConfig{Model: "gemini-b"},
		Suggest: &SuggestConfig{Limit: intPtr(3)},
	}

	got := mergeConfig(global, local)

	if got.DefaultFormat != "json" {
		t.Errorf("expected global format, got %q", got.DefaultFormat)
	}
	if got.BaseURL() != "https://ghe.example.com/api/v3/" {
		t.Errorf("expected global base URL, got %q", got.BaseURL())
	}
	if got.PersonaModel() != "gemini-b" {
		t.Errorf("expected local model to win, got %q", got.PersonaModel())
	}
	if got.MaxRepos() != 10 {
		t.Errorf("expected global max repos, got %d", got.MaxRepos())
	}
	if got.DebounceDuration() != 200*time.Millisecond {
		t.Errorf("expected global debounce, got %v", got.DebounceDuration())
	}
	if got.SuggestLimit() != 3 {
		t.Errorf("expected local limit, got %d", got.SuggestLimit())
	}
}

func TestMergeConfigEmptySections(t *testing.T) {
	got := mergeConfig(&Config{DefaultFormat: "table"}, &Config{DefaultFormat: "markdown"})
	if got.DefaultFormat != "markdown" {
		t.Errorf("expected local format, got %q", got.DefaultFormat)
	}
	if got.GitHub != nil || got.AI != nil || got.Suggest != nil {
		t.Errorf("expected nil sections, got %+v", got)
	}
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "config.yaml")
	localPath := filepath.Join(dir, "local.yaml")

	if err := os.WriteFile(globalPath, []byte("default_format: json\nai:\n  max_repos: 5\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(localPath, []byte("ai:\n  model: gemini-local\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFrom(globalPath, localPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultFormat != "json" {
		t.Errorf("expected json, got %q", cfg.DefaultFormat)
	}
	if cfg.MaxRepos() != 5 {
		t.Errorf("expected 5, got %d", cfg.MaxRepos())
	}
	if cfg.PersonaModel() != "gemini-local" {
		t.Errorf("expected gemini-local, got %q", cfg.PersonaModel())
	}
}

func TestLoadFromMissingFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := loadFrom(filepath.Join(dir, "none.yaml"), filepath.Join(dir, "none-local.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultFormat != "table" {
		t.Errorf("expected table default, got %q", cfg.DefaultFormat)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	globalPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(globalPath, []byte("ai: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := loadFrom(globalPath, filepath.Join(dir, "none.yaml"))
	if err == nil || !strings.Contains(err.Error(), "global config") {
		t.Errorf("expected global parse error, got %v", err)
	}
}

func TestDefaultConfigRoundTrip(t *testing.T) {
	out, err := DefaultConfig().ToYAML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"default_format", "base_url", "model", "max_repos", "debounce_ms", "limit"} {
		if !strings.Contains(out, key) {
			t.Errorf("expected %q in defaults yaml", key)
		}
	}
}

func TestMinimalConfigParses(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(MinimalConfig()), &cfg); err != nil {
		t.Fatalf("minimal config should parse: %v", err)
	}
	if cfg.DefaultFormat != "table" {
		t.Errorf("expected table, got %q", cfg.DefaultFormat)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := SaveTo(path, "default_format: json\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file written: %v", err)
	}
	if string(data) != "default_format: json\n" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestGetGitHubToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "abc")
	if got := (&Config{}).GetGitHubToken(); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
}
