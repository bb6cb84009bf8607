// package formatter renders match reports to machine-readable formats (JSON, CSV)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/groove-cli/groove/internal/spotify"
)

// ReportToJSON renders match results as an indented JSON array.
func ReportToJSON(results []spotify.MatchResult) ([]byte, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// ReportToCSV renders match results as CSV with columns: Artist, Title,
// Found, Confidence, Track ID, Matched Track, Matched Artists. Confidence is
// clamped to 1.0 for display.
func ReportToCSV(results []spotify.MatchResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Artist", "Title", "Found", "Confidence", "Track ID", "Matched Track", "Matched Artists"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.Song.Artist,
			result.Song.Title,
			strconv.FormatBool(result.Found),
			strconv.FormatFloat(DisplayConfidence(result.Confidence), 'f', 2, 64),
			"",
			"",
			"",
		}
		if result.Track != nil {
			record[4] = result.Track.ID
			record[5] = result.Track.Name
			record[6] = strings.Join(result.Track.Artists, "; ")
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// DisplayConfidence clamps a raw match score into [0, 1] for presentation.
// Raw scores can exceed 1.0 because popularity is an additive bonus.
func DisplayConfidence(score float64) float64 {
	if score > 1.0 {
		return 1.0
	}
	if score < 0.0 {
		return 0.0
	}
	return score
}
