package server

import (
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

const callbackPath = "/callback"

// OAuthResult is the terminal outcome of one authorization flow: either a
// token or an error, never both.
type OAuthResult struct {
	Token *oauth2.Token
	Err   error
}

// OAuthHandler receives the authorization-code callback, verifies the state
// parameter, exchanges the code, and reports the outcome exactly once.
// Repeated callbacks are rejected so a replayed redirect cannot overwrite the
// result.
type OAuthHandler struct {
	config *oauth2.Config
	state  string

	mu      sync.Mutex
	handled bool

	once    sync.Once
	results chan OAuthResult
}

// NewOAuthHandler creates a handler expecting the given state value. State
// must be unpredictable; it is the CSRF check for the flow.
func NewOAuthHandler(config *oauth2.Config, state string) *OAuthHandler {
	return &OAuthHandler{
		config:  config,
		state:   state,
		results: make(chan OAuthResult, 1),
	}
}

func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.handled {
		h.mu.Unlock()
		http.Error(w, "callback already processed", http.StatusBadRequest)
		return
	}
	h.handled = true
	h.mu.Unlock()

	query := r.URL.Query()

	if query.Get("state") != h.state {
		h.send(OAuthResult{Err: fmt.Errorf("state mismatch in oauth callback")})
		http.Error(w, "invalid state parameter", http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		h.send(OAuthResult{Err: fmt.Errorf("authorization denied: %s (%s)",
			query.Get("error"), query.Get("error_description"))})
		http.Error(w, "authorization failed", http.StatusBadRequest)
		return
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		h.send(OAuthResult{Err: fmt.Errorf("token exchange failed: %w", err)})
		http.Error(w, "token exchange failed", http.StatusInternalServerError)
		return
	}

	h.send(OAuthResult{Token: token})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

// send delivers the result exactly once and closes the channel.
func (h *OAuthHandler) send(result OAuthResult) {
	h.once.Do(func() {
		h.results <- result
		close(h.results)
	})
}

// Result returns the completion channel. It receives exactly one value and
// is then closed.
func (h *OAuthHandler) Result() <-chan OAuthResult {
	return h.results
}

const successPage = `<!DOCTYPE html>
<html>
<head>
    <title>groove &mdash; connected</title>
    <style>
        body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center;
               height: 100vh; margin: 0; background: #121212; }
        .card { text-align: center; background: #181818; color: #fff;
                padding: 2.5rem 3rem; border-radius: 8px; }
        h1 { color: #1DB954; margin: 0 0 0.75rem 0; }
        p { color: #b3b3b3; margin: 0; }
    </style>
</head>
<body>
    <div class="card">
        <h1>Connected to Spotify</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`
