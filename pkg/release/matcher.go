package release

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

// numberRegex extracts sequence numbers from cleaned titles.
var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// MatchConfidence grades how closely a filename title resembles a catalog title.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // Score < 0.70
	ConfidenceLow                           // Score >= 0.70
	ConfidenceMedium                        // Score >= 0.85
	ConfidenceHigh                          // Score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// MatchResult is the best candidate for a title.
type MatchResult struct {
	Title      string
	Score      float64 // Jaro-Winkler similarity, 0.0-1.0, after number adjustment
	Confidence MatchConfidence
}

// MatchTitle finds the candidate closest to title using Jaro-Winkler similarity
// on cleaned titles. Matching sequel numbers raise the score, mismatches lower it.
func MatchTitle(title string, candidates []string) MatchResult {
	best := MatchResult{Confidence: ConfidenceNone}
	if title == "" || len(candidates) == 0 {
		return best
	}

	cleaned := CleanTitle(title)
	numbers := numberRegex.FindAllString(cleaned, -1)

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		cleanedCandidate := CleanTitle(candidate)
		score := float64(edlib.JaroWinklerSimilarity(cleaned, cleanedCandidate))
		score = adjustScoreForNumbers(score, numbers, numberRegex.FindAllString(cleanedCandidate, -1))

		if score > best.Score {
			best.Title = candidate
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best.Confidence = ConfidenceNone
		best.Title = ""
	}
	return best
}

func adjustScoreForNumbers(score float64, titleNums, candidateNums []string) float64 {
	if len(titleNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	want := make(map[string]bool, len(titleNums))
	for _, n := range titleNums {
		want[n] = true
	}
	for _, n := range candidateNums {
		if want[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
