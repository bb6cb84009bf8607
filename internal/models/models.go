// package models defines the core value types shared across packages.
package models

import (
	"fmt"
	"strings"
)

// Song is a normalized (artist, title) pair used as search input.
//
// Construct with [NewSong]; both fields are trimmed and must be non-empty.
// Identity is case-insensitive on the (artist, title) pair.
type Song struct {
	Artist string
	Title  string
}

// NewSong builds a Song from raw artist and title strings.
// Returns an error when either field is empty after trimming.
func NewSong(artist, title string) (Song, error) {
	artist = strings.TrimSpace(artist)
	title = strings.TrimSpace(title)

	if artist == "" {
		return Song{}, fmt.Errorf("song artist is empty")
	}
	if title == "" {
		return Song{}, fmt.Errorf("song title is empty")
	}

	return Song{Artist: artist, Title: title}, nil
}

// Key returns the case-insensitive identity of the song.
func (s Song) Key() string {
	return strings.ToLower(s.Artist) + "\x00" + strings.ToLower(s.Title)
}

// Equal reports whether two songs share the same case-insensitive identity.
func (s Song) Equal(other Song) bool {
	return s.Key() == other.Key()
}

func (s Song) String() string {
	return s.Artist + " - " + s.Title
}
