package spotify

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/groove-cli/groove/internal/models"
)

var (
	collabMarkers = regexp.MustCompile(`(?i)\b(feat\.?|featuring|ft\.?|vs\.?)\b|&`)
	punctuation   = regexp.MustCompile(`[^\w\s-]`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// cleanSearchTerm strips featuring/collaboration markers and punctuation that
// interfere with Spotify's search, then collapses internal whitespace.
func cleanSearchTerm(term string) string {
	cleaned := collabMarkers.ReplaceAllString(strings.TrimSpace(term), "")
	cleaned = punctuation.ReplaceAllString(cleaned, "")
	cleaned = whitespace.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// BuildSearchQuery combines an artist-scoped and a track-scoped term into a
// structured query string.
func BuildSearchQuery(artist, title string) string {
	return "artist:" + cleanSearchTerm(artist) + " track:" + cleanSearchTerm(title)
}

// Search issues a single track search for the song and returns up to 10
// candidates in the relevance order reported by Spotify.
func (c *Client) Search(ctx context.Context, song models.Song) ([]Track, error) {
	params := url.Values{}
	params.Set("q", BuildSearchQuery(song.Artist, song.Title))
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(searchResultLimit))

	var resp searchResponse
	if err := c.doRequest(ctx, http.MethodGet, "/search?"+params.Encode(), nil, &resp, false); err != nil {
		return nil, err
	}

	items := resp.Tracks.Items
	if len(items) > searchResultLimit {
		items = items[:searchResultLimit]
	}

	tracks := make([]Track, 0, len(items))
	for _, item := range items {
		tracks = append(tracks, item.toTrack())
	}

	return tracks, nil
}
