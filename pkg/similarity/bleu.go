package similarity

import (
	"math"
	"strings"
)

// SentenceBLEU scores hypothesis against a single reference using uniform
// weights over 1..maxOrder-grams, clipped n-gram precision and the standard
// brevity penalty. No smoothing is applied: if any order has zero matches the
// score is 0. Empty inputs score 0.
func SentenceBLEU(reference, hypothesis []string, maxOrder int) float64 {
	if len(reference) == 0 || len(hypothesis) == 0 || maxOrder < 1 {
		return 0
	}

	var logPrecision float64
	for n := 1; n <= maxOrder; n++ {
		matches, total := clippedMatches(reference, hypothesis, n)
		if matches == 0 || total == 0 {
			return 0
		}
		logPrecision += math.Log(float64(matches) / float64(total))
	}

	score := brevityPenalty(len(reference), len(hypothesis)) * math.Exp(logPrecision/float64(maxOrder))
	return clamp(score, 0, 1)
}

// clippedMatches counts hypothesis n-grams found in the reference, each
// n-gram credited at most as often as it occurs in the reference.
func clippedMatches(reference, hypothesis []string, n int) (matches, total int) {
	hypCounts := ngramCounts(hypothesis, n)
	if len(hypCounts) == 0 {
		return 0, 0
	}
	refCounts := ngramCounts(reference, n)

	for gram, count := range hypCounts {
		total += count
		matches += min(count, refCounts[gram])
	}
	return matches, total
}

func brevityPenalty(refLen, hypLen int) float64 {
	if hypLen == 0 {
		return 0
	}
	if hypLen > refLen {
		return 1
	}
	return math.Exp(1 - float64(refLen)/float64(hypLen))
}

func ngramCounts(tokens []string, n int) map[string]int {
	counts := make(map[string]int)
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], "\x00")]++
	}
	return counts
}

func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
