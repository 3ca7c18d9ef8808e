package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Config holds client configuration.
type Config struct {
	Token      string       // Required: token with contents write access
	HTTPClient *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL    string       // Optional: API base URL (defaults to api.github.com, used for testing)
	UserAgent  string       // Optional: User-Agent header for outbound requests
}

// DefaultBaseURL is the default GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

const defaultUserAgent = "april-ivy/1.0"

// Client talks to the GitHub contents API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// File is a fetched repository file with its revision SHA.
type File struct {
	Content string // Decoded file content
	SHA     string // Revision token required for a conditional update
}

// contentsResponse is the wire shape of a contents GET.
type contentsResponse struct {
	Type     string `json:"type"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
	SHA      string `json:"sha"`
}

// updateRequest is the wire shape of a contents PUT.
type updateRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha"`
	Branch  string `json:"branch"`
}

// NewClient creates a new GitHub contents client.
//
// Returns an error if the required Token is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("github: Token is required")
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

	return &Client{
		token:      cfg.Token,
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
	}, nil
}

// GetFile fetches a file from a repository branch, returning its decoded
// content and revision SHA.
//
// Anything that is not a regular file (a directory listing, a symlink,
// a submodule) is an error.
func (c *Client) GetFile(ctx context.Context, owner, repo, path, branch string) (*File, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		c.baseURL, owner, repo, path, url.QueryEscape(branch))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("github: failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("github: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("get contents", resp.StatusCode, body)
	}

	var parsed contentsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("github: failed to parse response: %w", err)
	}

	if parsed.Type != "file" {
		return nil, fmt.Errorf("github: %s is not a file (type %q)", path, parsed.Type)
	}

	decoded, err := base64.StdEncoding.DecodeString(stripNewlines(parsed.Content))
	if err != nil {
		return nil, fmt.Errorf("github: failed to decode content: %w", err)
	}

	return &File{Content: string(decoded), SHA: parsed.SHA}, nil
}

// UpdateFile writes new content to a file on a branch, conditional on
// the given prior revision SHA.
//
// Returns ErrConflict (wrapped) when the server rejects the write
// because the SHA no longer matches the current file state.
func (c *Client) UpdateFile(ctx context.Context, owner, repo, path, branch, message, content, sha string) error {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, repo, path)

	payload, err := json.Marshal(updateRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString([]byte(content)),
		SHA:     sha,
		Branch:  branch,
	})
	if err != nil {
		return fmt.Errorf("github: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("github: failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("github: failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, apiMessage(body))
	default:
		return apiError("update contents", resp.StatusCode, body)
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
}

// stripNewlines removes the line breaks GitHub inserts into base64
// content payloads.
func stripNewlines(s string) string {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			continue
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}
