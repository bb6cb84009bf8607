// Package parser reads song lists from plain-text, CSV, and JSON files and
// normalizes them into [models.Song] values.
//
// Malformed rows degrade to warnings so one bad line never discards a whole
// file; only unreadable files and undecodable documents are errors.
package parser

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/groove-cli/groove/internal/models"
)

// Result aggregates the songs parsed from one or more files along with
// per-row warnings.
type Result struct {
	Songs    []models.Song
	Warnings []string
}

// Format identifies a supported input file format.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFile reads and parses a single song list file. The format is chosen by
// file extension, falling back to content sniffing for unknown extensions.
func ParseFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	result := &Result{}
	if err := parseContent(result, string(data), DetectFormat(path, string(data))); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return result, nil
}

// ParseFiles parses several files into one combined result, preserving file
// order. Files that cannot be read or decoded are reported in the joined
// error; the remaining files still contribute their songs.
func ParseFiles(paths []string) (*Result, error) {
	combined := &Result{}
	var errs []error

	for _, path := range paths {
		result, err := ParseFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		combined.Songs = append(combined.Songs, result.Songs...)
		combined.Warnings = append(combined.Warnings, result.Warnings...)
	}

	return combined, errors.Join(errs...)
}

// DetectFormat picks the format by extension when recognized, otherwise by
// inspecting the content: a JSON document marker wins, then a comma in the
// first line suggests CSV, and plain text is the fallback.
func DetectFormat(path, content string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return FormatTXT
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	}

	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return FormatJSON
	}

	firstLine, _, _ := strings.Cut(content, "\n")
	if strings.Contains(firstLine, ",") {
		return FormatCSV
	}

	return FormatTXT
}

func parseContent(result *Result, content string, format Format) error {
	switch format {
	case FormatCSV:
		return parseCSV(result, content)
	case FormatJSON:
		return parseJSON(result, content)
	default:
		parseTXT(result, content)
		return nil
	}
}

// txtSeparators are tried in order; the first one present in a line wins.
var txtSeparators = []string{" - ", " | ", "\t"}

// parseTXT handles one song per line. Blank lines and lines starting with
// "#" are skipped.
func parseTXT(result *Result, content string) {
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var artist, title string
		var split bool
		for _, sep := range txtSeparators {
			if strings.Contains(line, sep) {
				artist, title, _ = strings.Cut(line, sep)
				split = true
				break
			}
		}
		if !split {
			result.Warnings = append(result.Warnings, fmt.Sprintf("could not parse line %d: %s", i+1, line))
			continue
		}

		appendSong(result, artist, title, fmt.Sprintf("line %d", i+1))
	}
}

// parseCSV treats the first row as a header. Artist and title columns are
// located by header name (artist/Artist, song/Song, title/Title) and default
// to the first two columns when the header names nothing recognizable.
func parseCSV(result *Result, content string) error {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("malformed csv: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	artistCol, titleCol := headerColumns(records[0])
	for i, row := range records[1:] {
		rowNum := i + 2
		if len(row) <= artistCol || len(row) <= titleCol {
			result.Warnings = append(result.Warnings, fmt.Sprintf("missing artist or title at row %d", rowNum))
			continue
		}
		appendSong(result, row[artistCol], row[titleCol], fmt.Sprintf("row %d", rowNum))
	}

	return nil
}

func headerColumns(header []string) (artistCol, titleCol int) {
	artistCol, titleCol = 0, 1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "artist":
			artistCol = i
		case "song", "title":
			titleCol = i
		}
	}
	return artistCol, titleCol
}

type jsonSong struct {
	Artist string `json:"artist"`
	Name   string `json:"name"`
	Title  string `json:"title"`
	Song   string `json:"song"`
}

func (s jsonSong) artist() string {
	if s.Artist != "" {
		return s.Artist
	}
	return s.Name
}

func (s jsonSong) title() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Song
}

// parseJSON accepts either a top-level array of song objects or an object
// wrapping one under a "songs", "tracks", or "playlist" key.
func parseJSON(result *Result, content string) error {
	var raw any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return fmt.Errorf("malformed json: %w", err)
	}

	var items []json.RawMessage
	switch doc := raw.(type) {
	case []any:
		if err := json.Unmarshal([]byte(content), &items); err != nil {
			return fmt.Errorf("malformed json array: %w", err)
		}
	case map[string]any:
		var wrapper struct {
			Songs    []json.RawMessage `json:"songs"`
			Tracks   []json.RawMessage `json:"tracks"`
			Playlist []json.RawMessage `json:"playlist"`
		}
		if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
			return fmt.Errorf("malformed json object: %w", err)
		}
		switch {
		case wrapper.Songs != nil:
			items = wrapper.Songs
		case wrapper.Tracks != nil:
			items = wrapper.Tracks
		case wrapper.Playlist != nil:
			items = wrapper.Playlist
		default:
			// A bare object is treated as a single song.
			single, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("malformed json object: %w", err)
			}
			items = []json.RawMessage{single}
		}
	default:
		return fmt.Errorf("json document must be an array or object")
	}

	for i, item := range items {
		var song jsonSong
		if err := json.Unmarshal(item, &song); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid song data at index %d", i))
			continue
		}
		if song.artist() == "" || song.title() == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("missing artist or title at index %d", i))
			continue
		}
		appendSong(result, song.artist(), song.title(), fmt.Sprintf("index %d", i))
	}

	return nil
}

func appendSong(result *Result, artist, title, position string) {
	song, err := models.NewSong(artist, title)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid song data at %s: %v", position, err))
		return
	}
	result.Songs = append(result.Songs, song)
}
