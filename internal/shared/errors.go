package shared

import "fmt"

var (
	// Spotify API error taxonomy. Classified at the HTTP boundary and
	// inspected with errors.Is by callers deciding whether to abort.
	ErrUnauthorized     = fmt.Errorf("unauthorized: invalid or expired access token")
	ErrRateLimited      = fmt.Errorf("rate limited")
	ErrClient           = fmt.Errorf("client error")
	ErrServer           = fmt.Errorf("server error")
	ErrTransport        = fmt.Errorf("transport error")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrNoAccessToken    = fmt.Errorf("no access token")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// Configuration and input errors
	ErrMissingConfig   = fmt.Errorf("configuration not found")
	ErrInvalidConfig   = fmt.Errorf("invalid configuration")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// BackoffWarning is appended to warning logs whenever the API reports a 429.
// No automatic retry is performed; the caller decides whether to retry.
const BackoffWarning = "rate limit exceeded: back off before retrying"
