package spotify

import (
	"strings"

	"github.com/groove-cli/groove/internal/models"
)

// Match scoring weights. The popularity term is an additive bonus on top of
// the weighted artist/title sum, so a raw score can exceed 1.0 when a popular
// track matches exactly. Scores are deliberately left unclamped to preserve
// strict ranking order; clamp only for display.
const (
	artistWeight       = 0.7
	titleWeight        = 0.3
	popularityWeight   = 0.1
	sharedWordScale    = 0.8
	fallbackConfidence = 0.1
	maxAlternatives    = 3
)

// BestMatch scores each candidate against the song and selects the one with
// the strictly highest score; ties keep the first seen, preserving the search
// result order. With no candidates the result is not-found. When every
// candidate scores zero, the top search result is trusted as a last resort
// with a nominal confidence of 0.1.
func BestMatch(song models.Song, candidates []Track) MatchResult {
	result := MatchResult{
		Song:  song,
		Query: BuildSearchQuery(song.Artist, song.Title),
	}

	if len(candidates) == 0 {
		return result
	}

	var best *Track
	bestScore := 0.0
	for i := range candidates {
		if score := matchScore(candidates[i], song); score > bestScore {
			bestScore = score
			best = &candidates[i]
		}
	}

	if best == nil {
		best = &candidates[0]
		bestScore = fallbackConfidence
	}

	alternatives := candidates
	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}

	result.Found = true
	result.Confidence = bestScore
	result.Track = best
	result.Alternatives = append([]Track(nil), alternatives...)
	return result
}

// matchScore is a pure function of the candidate and the query.
func matchScore(track Track, song models.Song) float64 {
	artist := strings.ToLower(song.Artist)
	title := strings.ToLower(song.Title)

	candidateArtists := make([]string, 0, len(track.Artists))
	for _, a := range track.Artists {
		candidateArtists = append(candidateArtists, strings.ToLower(a))
	}

	return artistWeight*artistScore(candidateArtists, artist) +
		titleWeight*titleScore(strings.ToLower(track.Name), title) +
		popularityWeight*float64(track.Popularity)/100.0
}

// artistScore returns 1.0 on an exact match against any candidate artist;
// otherwise each candidate artist contributes the better of its containment
// ratio and its scaled shared-word ratio, and the maximum wins.
func artistScore(candidateArtists []string, artist string) float64 {
	if len(candidateArtists) == 0 {
		return 0.0
	}

	for _, candidate := range candidateArtists {
		if candidate == artist {
			return 1.0
		}
	}

	best := 0.0
	for _, candidate := range candidateArtists {
		if strings.Contains(candidate, artist) || strings.Contains(artist, candidate) {
			best = max(best, containmentRatio(candidate, artist))
		}
		if ratio := sharedWordRatio(candidate, artist); ratio > 0 {
			best = max(best, ratio*sharedWordScale)
		}
	}

	return best
}

// titleScore returns 1.0 on exact match, the containment ratio when one
// string contains the other, else the unscaled shared-word ratio.
func titleScore(name, title string) float64 {
	if name == title {
		return 1.0
	}

	if strings.Contains(name, title) || strings.Contains(title, name) {
		return containmentRatio(name, title)
	}

	return sharedWordRatio(name, title)
}

func containmentRatio(a, b string) float64 {
	shorter, longer := len(a), len(b)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if longer == 0 {
		return 0.0
	}
	return float64(shorter) / float64(longer)
}

// sharedWordRatio counts distinct words present in both strings, over the
// larger whitespace-split token count.
func sharedWordRatio(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0.0
	}

	inA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		inA[w] = struct{}{}
	}

	common := 0
	counted := make(map[string]struct{})
	for _, w := range wordsB {
		if _, ok := inA[w]; !ok {
			continue
		}
		if _, dup := counted[w]; dup {
			continue
		}
		counted[w] = struct{}{}
		common++
	}

	if common == 0 {
		return 0.0
	}

	return float64(common) / float64(max(len(wordsA), len(wordsB)))
}
