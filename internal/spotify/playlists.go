package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/groove-cli/groove/internal/shared"
)

// CreatePlaylist creates a playlist owned by the current user. The user id is
// resolved first with its own call; if that fails the operation aborts and no
// playlist is created.
func (c *Client) CreatePlaylist(ctx context.Context, name, description string, public bool) (*Playlist, error) {
	userID, err := c.CurrentUserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}

	body := createPlaylistRequest{Name: name, Public: public}
	if description != "" {
		body.Description = &description
	}

	var resp playlistObject
	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID))
	if err := c.doRequest(ctx, http.MethodPost, endpoint, body, &resp, false); err != nil {
		return nil, err
	}

	playlist := resp.toPlaylist()
	return &playlist, nil
}

// Playlist retrieves a playlist snapshot by id.
func (c *Client) Playlist(ctx context.Context, playlistID string) (*Playlist, error) {
	var resp playlistObject
	endpoint := fmt.Sprintf("/playlists/%s", url.PathEscape(playlistID))
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp, true); err != nil {
		return nil, err
	}

	playlist := resp.toPlaylist()
	return &playlist, nil
}

// PlaylistTrackIDs returns the ids of every track in the playlist, in
// playlist order, paginating 100 items at a time until the reported total has
// been accumulated. An empty playlist yields a single page and no ids.
func (c *Client) PlaylistTrackIDs(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string
	offset := 0

	for {
		endpoint := fmt.Sprintf("/playlists/%s/tracks?limit=%d&offset=%d",
			url.PathEscape(playlistID), playlistPageSize, offset)

		var page playlistTracksResponse
		if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &page, true); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			if item.Track.ID != "" {
				ids = append(ids, item.Track.ID)
			}
		}

		if len(page.Items) == 0 || offset+len(page.Items) >= page.Total {
			break
		}
		offset += playlistPageSize
	}

	return ids, nil
}

// ListPlaylists paginates the user's playlist collection 50 at a time,
// following the response's next-page indicator. The optional case-insensitive
// name filter is applied after pagination completes, not server-side.
func (c *Client) ListPlaylists(ctx context.Context, filter string, limit int) ([]Playlist, error) {
	var all []Playlist
	offset := 0

	for {
		endpoint := fmt.Sprintf("/me/playlists?limit=%d&offset=%d", playlistListPageSize, offset)

		var page playlistsResponse
		if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &page, false); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			all = append(all, item.toPlaylist())
		}

		if page.Next == nil {
			break
		}
		offset += playlistListPageSize
	}

	if filter != "" {
		needle := strings.ToLower(filter)
		filtered := make([]Playlist, 0, len(all))
		for _, pl := range all {
			if strings.Contains(strings.ToLower(pl.Name), needle) {
				filtered = append(filtered, pl)
			}
		}
		all = filtered
	}

	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}

	return all, nil
}

// AddTracks reconciles trackIDs into the playlist. With skipDuplicates the
// playlist's current membership is fetched first and already-present ids are
// dropped. The remainder is submitted in batches of at most 100; a failing
// batch is recorded and subsequent batches are still attempted, so partial
// success is possible and reported. Empty input is a trivial success with no
// remote calls.
func (c *Client) AddTracks(ctx context.Context, playlistID string, trackIDs []string, skipDuplicates bool) AddResult {
	var result AddResult
	if len(trackIDs) == 0 {
		return result
	}

	toAdd := trackIDs
	if skipDuplicates {
		existing, err := c.PlaylistTrackIDs(ctx, playlistID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to list playlist tracks: %v", err))
			result.Warnings = appendBackoffWarning(result.Warnings, err)
			return result
		}

		present := make(map[string]struct{}, len(existing))
		for _, id := range existing {
			present[id] = struct{}{}
		}

		filtered := make([]string, 0, len(trackIDs))
		for _, id := range trackIDs {
			if _, ok := present[id]; !ok {
				filtered = append(filtered, id)
			}
		}

		result.Skipped = len(trackIDs) - len(filtered)
		toAdd = filtered
	}

	for start := 0; start < len(toAdd); start += maxTracksPerRequest {
		end := min(start+maxTracksPerRequest, len(toAdd))
		batch := toAdd[start:end]

		if err := c.addTrackBatch(ctx, playlistID, batch); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("failed to add tracks %d-%d: %v", start+1, end, err))
			result.Warnings = appendBackoffWarning(result.Warnings, err)
			continue
		}
		result.Added += len(batch)
	}

	return result
}

func (c *Client) addTrackBatch(ctx context.Context, playlistID string, trackIDs []string) error {
	uris := make([]string, len(trackIDs))
	for i, id := range trackIDs {
		uris[i] = trackURIPrefix + id
	}

	// The returned snapshot id is unused beyond success/failure.
	var snapshot snapshotResponse
	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	return c.doRequest(ctx, http.MethodPost, endpoint, addTracksRequest{URIs: uris}, &snapshot, true)
}

func appendBackoffWarning(warnings []string, err error) []string {
	if errors.Is(err, shared.ErrRateLimited) {
		return append(warnings, shared.BackoffWarning)
	}
	return warnings
}
