// Package auth manages the Spotify authorization-code flow and the encrypted
// on-disk token session it produces.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/groove-cli/groove/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// scopes cover playlist reads, playlist writes, and profile lookup.
var scopes = []string{
	"playlist-modify-public",
	"playlist-modify-private",
	"playlist-read-private",
	"user-read-private",
}

// Authenticator runs the authorization-code flow against Spotify's accounts
// service and keeps the resulting session in a [TokenStore]. Its AccessToken
// method satisfies the API client's token provider interface, refreshing
// expired tokens transparently.
type Authenticator struct {
	config *oauth2.Config
	store  *TokenStore
}

// NewAuthenticator builds an authenticator for the given application
// credentials and token store.
func NewAuthenticator(clientID, clientSecret, redirectURI string, store *TokenStore) (*Authenticator, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client id and secret are required", shared.ErrMissingConfig)
	}

	return &Authenticator{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  spotifyAuthURL,
				TokenURL: spotifyTokenURL,
			},
		},
		store: store,
	}, nil
}

// AuthURL returns the authorization URL the user must visit. The state value
// is echoed back on the callback and must be verified there.
func (a *Authenticator) AuthURL(state string) string {
	return a.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// OAuthConfig exposes the underlying configuration for the callback server.
func (a *Authenticator) OAuthConfig() *oauth2.Config { return a.config }

// Exchange trades an authorization code for a token and persists it.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange failed: %v", shared.ErrUnauthorized, err)
	}

	if err := a.store.Save(token); err != nil {
		return nil, err
	}
	return token, nil
}

// SaveToken persists a token obtained outside Exchange, such as one produced
// by the callback server's own code exchange.
func (a *Authenticator) SaveToken(token *oauth2.Token) error {
	return a.store.Save(token)
}

// Authenticated reports whether a stored session exists, and when it expires.
// A session with an expired access token but a refresh token still counts.
func (a *Authenticator) Authenticated() (bool, time.Time) {
	token, err := a.store.Load()
	if err != nil {
		return false, time.Time{}
	}
	if !token.Valid() && token.RefreshToken == "" {
		return false, token.Expiry
	}
	return true, token.Expiry
}

// AccessToken returns a valid access token, refreshing via the stored refresh
// token when the current one has expired. Refreshed tokens are persisted so
// subsequent runs skip the refresh.
func (a *Authenticator) AccessToken(ctx context.Context) (string, error) {
	stored, err := a.store.Load()
	if err != nil {
		return "", err
	}

	if stored.Valid() {
		return stored.AccessToken, nil
	}

	if stored.RefreshToken == "" {
		return "", fmt.Errorf("%w: stored token expired and no refresh token available", shared.ErrTokenExpired)
	}

	refreshed, err := a.config.TokenSource(ctx, stored).Token()
	if err != nil {
		return "", fmt.Errorf("%w: token refresh failed: %v", shared.ErrTokenExpired, err)
	}

	if refreshed.AccessToken != stored.AccessToken {
		if err := a.store.Save(refreshed); err != nil {
			return "", err
		}
	}

	return refreshed.AccessToken, nil
}

// Logout discards the stored session.
func (a *Authenticator) Logout() error {
	return a.store.Clear()
}
