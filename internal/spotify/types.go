// Spotify Web API wire types and their domain mappings.
//
// Response shapes based on https://developer.spotify.com/documentation/web-api/reference/
package spotify

import "github.com/groove-cli/groove/internal/models"

// Track is a candidate track returned by the catalog search, mapped from the
// API response at the boundary. Read-only once produced.
type Track struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	Album       string   `json:"album"`
	ReleaseDate string   `json:"release_date"`
	DurationMS  int      `json:"duration_ms"`
	Popularity  int      `json:"popularity"`
	PreviewURL  string   `json:"preview_url,omitempty"`
	ExternalURL string   `json:"external_url"`
}

// Playlist is a snapshot of a playlist at fetch time. It may go stale; no
// caching across runs.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Public      bool   `json:"public"`
	Owner       string `json:"owner"`
	ExternalURL string `json:"external_url"`
	TrackCount  int    `json:"track_count"`
}

// MatchResult is the outcome of matching one song against the catalog.
//
// Found == false implies Confidence == 0 and Track == nil; Found == true
// implies Track != nil.
type MatchResult struct {
	Song         models.Song `json:"song"`
	Found        bool        `json:"found"`
	Confidence   float64     `json:"confidence"`
	Track        *Track      `json:"track,omitempty"`
	Alternatives []Track     `json:"alternatives,omitempty"`
	Query        string      `json:"query,omitempty"`
}

// AddResult reports the outcome of an AddTracks call. A failing batch is
// recorded in Errors without stopping subsequent batches.
type AddResult struct {
	Added    int      `json:"added"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Wire types, decoded from API responses and mapped to domain types above.

type artistObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type albumObject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
}

type trackObject struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Artists      []artistObject    `json:"artists"`
	Album        albumObject       `json:"album"`
	DurationMS   int               `json:"duration_ms"`
	Popularity   int               `json:"popularity"`
	PreviewURL   string            `json:"preview_url"`
	ExternalURLs map[string]string `json:"external_urls"`
}

func (t trackObject) toTrack() Track {
	artists := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}

	return Track{
		ID:          t.ID,
		Name:        t.Name,
		Artists:     artists,
		Album:       t.Album.Name,
		ReleaseDate: t.Album.ReleaseDate,
		DurationMS:  t.DurationMS,
		Popularity:  t.Popularity,
		PreviewURL:  t.PreviewURL,
		ExternalURL: t.ExternalURLs["spotify"],
	}
}

type searchResponse struct {
	Tracks struct {
		Items []trackObject `json:"items"`
	} `json:"tracks"`
}

type userObject struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type ownerObject struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type playlistObject struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Public       bool              `json:"public"`
	Owner        ownerObject       `json:"owner"`
	ExternalURLs map[string]string `json:"external_urls"`
	SnapshotID   string            `json:"snapshot_id"`
	Tracks       struct {
		Total int `json:"total"`
	} `json:"tracks"`
}

func (p playlistObject) toPlaylist() Playlist {
	// Owner display name falls back to the owner id when absent.
	owner := p.Owner.DisplayName
	if owner == "" {
		owner = p.Owner.ID
	}

	return Playlist{
		ID:          p.ID,
		Name:        p.Name,
		Public:      p.Public,
		Owner:       owner,
		ExternalURL: p.ExternalURLs["spotify"],
		TrackCount:  p.Tracks.Total,
	}
}

type playlistTracksResponse struct {
	Items []struct {
		Track struct {
			ID string `json:"id"`
		} `json:"track"`
	} `json:"items"`
	Total int `json:"total"`
}

type playlistsResponse struct {
	Items []playlistObject `json:"items"`
	Next  *string          `json:"next"`
}

type createPlaylistRequest struct {
	Name        string  `json:"name"`
	Public      bool    `json:"public"`
	Description *string `json:"description,omitempty"`
}

type addTracksRequest struct {
	URIs []string `json:"uris"`
}

type snapshotResponse struct {
	SnapshotID string `json:"snapshot_id"`
}
