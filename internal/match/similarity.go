package match

import (
	"math"

	"github.com/agnivade/levenshtein"

	"lyricsync/internal/normalize"
	"lyricsync/internal/textutil"
)

// Similarity scores two normalized keys in [0, 1]. It is symmetric and
// returns 1 only for identical keys.
func (m *Matcher) Similarity(a, b normalize.Key) float64 {
	return similarity(m.policy, a, b)
}

func similarity(p Policy, a, b normalize.Key) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	edit := editRatio(string(a), string(b))
	token := textutil.CosineSimilarity(textutil.NewFingerprint(string(a)), textutil.NewFingerprint(string(b)))
	score := (p.EditWeight*edit + p.TokenWeight*token) / (p.EditWeight + p.TokenWeight)

	if sharesPrefix(string(a), string(b), p.PrefixLength) && score < p.AcceptThreshold {
		score = p.AcceptThreshold
	}
	if score >= 1 {
		score = math.Nextafter(1, 0)
	}
	if score < 0 {
		score = 0
	}
	return score
}

// editRatio is 1 - levenshtein(a, b) / max(len). Keys are ASCII.
func editRatio(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

func sharesPrefix(a, b string, n int) bool {
	if n <= 0 || len(a) < n || len(b) < n {
		return false
	}
	return a[:n] == b[:n]
}
