// package spotify implements the Spotify Web API client used for track
// search and playlist synchronization.
//
// All outbound calls issued by one Client instance pass through a single
// minimum-interval throttle, so search and playlist operations share the same
// request pacing discipline.
package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/groove-cli/groove/internal/shared"
	"golang.org/x/time/rate"
)

const (
	apiBaseURL = "https://api.spotify.com/v1"

	// minRequestInterval is the minimum spacing between two outbound calls
	// from the same client instance, to stay under Spotify's rate limits.
	minRequestInterval = 100 * time.Millisecond

	searchResultLimit    = 10
	maxTracksPerRequest  = 100
	playlistPageSize     = 100
	playlistListPageSize = 50
	trackURIPrefix       = "spotify:track:"
)

// TokenProvider yields a valid bearer token for API calls, or an error when
// the user is not authenticated.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider wrapping a fixed access token.
type StaticToken string

func (t StaticToken) AccessToken(ctx context.Context) (string, error) {
	if t == "" {
		return "", shared.ErrNoAccessToken
	}
	return string(t), nil
}

// Client issues authenticated, rate-limited requests against the Spotify Web API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	limiter    *rate.Limiter
}

// NewClient creates a Spotify API client. An empty baseURL selects the
// production API; a nil httpClient selects [http.DefaultClient].
func NewClient(baseURL string, tokens TokenProvider, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = apiBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Every(minRequestInterval), 1),
	}
}

// doRequest performs one authenticated request. The limiter is waited on
// immediately before the call is issued, not after it completes, so slow
// responses do not compound the delay.
//
// playlistScoped marks calls whose 404 means the playlist does not exist.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, result any, playlistScoped bool) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNoAccessToken, err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Includes timeouts; classified as retryable transport failures.
		return fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return classifyStatus(resp.StatusCode, string(detail), playlistScoped)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// classifyStatus maps a non-2xx response to the shared error taxonomy.
func classifyStatus(status int, detail string, playlistScoped bool) error {
	switch {
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w (status %d)", shared.ErrUnauthorized, status)
	case status == http.StatusNotFound && playlistScoped:
		return fmt.Errorf("%w (status %d)", shared.ErrPlaylistNotFound, status)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: too many requests (status %d)", shared.ErrRateLimited, status)
	case status >= 400 && status < 500:
		return fmt.Errorf("%w: status %d: %s", shared.ErrClient, status, detail)
	case status >= 500:
		return fmt.Errorf("%w: status %d", shared.ErrServer, status)
	default:
		return fmt.Errorf("unexpected status %d: %s", status, detail)
	}
}

// CurrentUserID resolves the authenticated user's id.
func (c *Client) CurrentUserID(ctx context.Context) (string, error) {
	var user userObject
	if err := c.doRequest(ctx, http.MethodGet, "/me", nil, &user, false); err != nil {
		return "", err
	}
	if user.ID == "" {
		return "", fmt.Errorf("%w: profile response has no user id", shared.ErrServer)
	}
	return user.ID, nil
}
