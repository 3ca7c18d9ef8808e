// Package config loads process configuration from the environment,
// optionally seeded from a .env file. The result is an immutable
// struct constructed once at startup and passed into every component;
// nothing reads the environment after Load returns.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	LastFM LastFMConfig
	GitHub GitHubConfig

	// Path of the single-record status cache file
	CacheFile string

	// Literal token upgraded to an update zone on first patch
	Placeholder string

	// Spacing between reconcile cycle starts
	PollInterval time.Duration

	// Minimum spacing between writes when content is unchanged
	ReannounceTTL time.Duration

	// User-Agent string for all outbound requests
	UserAgent string
}

// LastFMConfig holds Last.fm specific configuration.
type LastFMConfig struct {
	APIKey string
	User   string
}

// GitHubConfig identifies the README and the credential to write it.
type GitHubConfig struct {
	Token      string
	Owner      string
	Repo       string
	Branch     string
	ReadmePath string
}

// Defaults and floors for optional settings.
const (
	DefaultBranch        = "main"
	DefaultReadmePath    = "README.md"
	DefaultPlaceholder   = "%music%"
	DefaultUserAgent     = "april-ivy/1.0"
	DefaultPollInterval  = 30 * time.Second
	MinPollInterval      = 5 * time.Second
	DefaultReannounceTTL = 10 * time.Minute
	MinReannounceTTL     = time.Minute
)

// Load reads configuration from the environment.
//
// When envFile is non-empty it is loaded first (and must exist);
// otherwise a .env in the working directory is loaded when present.
// Missing required settings are a fatal startup error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	v := viper.New()
	for key, env := range map[string]string{
		"lastfm.api_key":          "LASTFM_API_KEY",
		"lastfm.user":             "LASTFM_USER",
		"github.token":            "GITHUB_TOKEN",
		"github.owner":            "GITHUB_OWNER",
		"github.repo":             "GITHUB_REPO",
		"github.branch":           "GITHUB_BRANCH",
		"github.readme_path":      "README_PATH",
		"placeholder":             "PLACEHOLDER",
		"cache_file":              "CACHE_FILE",
		"poll_interval":           "POLL_INTERVAL",
		"min_reannounce_interval": "MIN_REANNOUNCE_INTERVAL",
		"user_agent":              "USER_AGENT",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	v.SetDefault("github.branch", DefaultBranch)
	v.SetDefault("github.readme_path", DefaultReadmePath)
	v.SetDefault("placeholder", DefaultPlaceholder)
	v.SetDefault("cache_file", defaultCacheFile())
	v.SetDefault("poll_interval", DefaultPollInterval)
	v.SetDefault("min_reannounce_interval", DefaultReannounceTTL)
	v.SetDefault("user_agent", DefaultUserAgent)

	cfg := &Config{
		LastFM: LastFMConfig{
			APIKey: v.GetString("lastfm.api_key"),
			User:   v.GetString("lastfm.user"),
		},
		GitHub: GitHubConfig{
			Token:      v.GetString("github.token"),
			Owner:      v.GetString("github.owner"),
			Repo:       v.GetString("github.repo"),
			Branch:     v.GetString("github.branch"),
			ReadmePath: v.GetString("github.readme_path"),
		},
		CacheFile:     v.GetString("cache_file"),
		Placeholder:   v.GetString("placeholder"),
		PollInterval:  v.GetDuration("poll_interval"),
		ReannounceTTL: v.GetDuration("min_reannounce_interval"),
		UserAgent:     v.GetString("user_agent"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.clampIntervals()
	return cfg, nil
}

// validate reports all missing required settings at once.
func (c *Config) validate() error {
	var missing []string
	for env, val := range map[string]string{
		"LASTFM_API_KEY": c.LastFM.APIKey,
		"LASTFM_USER":    c.LastFM.User,
		"GITHUB_TOKEN":   c.GitHub.Token,
		"GITHUB_OWNER":   c.GitHub.Owner,
		"GITHUB_REPO":    c.GitHub.Repo,
	} {
		if val == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// clampIntervals enforces the interval floors.
func (c *Config) clampIntervals() {
	if c.PollInterval < MinPollInterval {
		c.PollInterval = MinPollInterval
	}
	if c.ReannounceTTL < MinReannounceTTL {
		c.ReannounceTTL = MinReannounceTTL
	}
}

// defaultCacheFile returns the default status cache location.
func defaultCacheFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "status.json"
	}
	return filepath.Join(homeDir, ".local", "share", "april-ivy", "status.json")
}
