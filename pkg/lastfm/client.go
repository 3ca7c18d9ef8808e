package lastfm

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds client configuration.
type Config struct {
	APIKey     string           // Required: Last.fm API key
	HTTPClient *http.Client     // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL    string           // Optional: Base URL for API (defaults to Last.fm API, used for testing)
	UserAgent  string           // Optional: User-Agent header for outbound requests
	Now        func() time.Time // Optional: clock (defaults to time.Now, used for testing)
}

const (
	// DefaultBaseURL is the default Last.fm API endpoint.
	DefaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

	defaultUserAgent = "april-ivy/1.0"
)

// Client fetches recent-track data from the Last.fm API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	userAgent  string
	now        func() time.Time
}

// NewClient creates a new Last.fm API client.
//
// Returns an error if the required APIKey is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("lastfm: APIKey is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		now:        now,
	}, nil
}
