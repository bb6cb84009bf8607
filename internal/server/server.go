// Package server runs the short-lived localhost HTTP server that receives the
// Spotify OAuth callback during `groove auth login`.
//
// The server exists only for the duration of one authorization flow: it
// serves a single /callback request, pushes the outcome through a channel,
// and is shut down by the caller.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const readHeaderTimeout = 5 * time.Second

// CallbackServer hosts an [OAuthHandler] on a local address.
type CallbackServer struct {
	httpServer *http.Server
	handler    *OAuthHandler
}

// NewCallbackServer binds the handler's callback route on host:port.
func NewCallbackServer(host string, port int, handler *OAuthHandler) *CallbackServer {
	mux := http.NewServeMux()
	mux.Handle(callbackPath, handler)

	return &CallbackServer{
		httpServer: &http.Server{
			Addr:              net.JoinHostPort(host, fmt.Sprintf("%d", port)),
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		handler: handler,
	}
}

// Start serves until Shutdown. A closed listener is a normal exit, not an
// error.
func (s *CallbackServer) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("callback server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *CallbackServer) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Result exposes the handler's completion channel.
func (s *CallbackServer) Result() <-chan OAuthResult {
	return s.handler.Result()
}
