package similarity

// RougeScore holds ROUGE precision, recall and F1, each in [0, 1].
type RougeScore struct {
	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1        float64 `json:"f1" yaml:"f1"`
}

// RougeN computes n-gram overlap between reference and hypothesis tokens.
// Precision is relative to the hypothesis, recall to the reference.
func RougeN(reference, hypothesis []string, n int) RougeScore {
	if n < 1 {
		return RougeScore{}
	}
	refCounts := ngramCounts(reference, n)
	hypCounts := ngramCounts(hypothesis, n)

	var overlap int
	for gram, count := range hypCounts {
		overlap += min(count, refCounts[gram])
	}
	return newRougeScore(overlap, max(len(hypothesis)-n+1, 0), max(len(reference)-n+1, 0))
}

// RougeL computes the longest-common-subsequence variant of ROUGE.
func RougeL(reference, hypothesis []string) RougeScore {
	return newRougeScore(lcsLength(reference, hypothesis), len(hypothesis), len(reference))
}

func newRougeScore(overlap, hypTotal, refTotal int) RougeScore {
	if hypTotal == 0 || refTotal == 0 {
		return RougeScore{}
	}
	precision := float64(overlap) / float64(hypTotal)
	recall := float64(overlap) / float64(refTotal)
	return RougeScore{
		Precision: precision,
		Recall:    recall,
		F1:        fMeasure(precision, recall),
	}
}

func fMeasure(precision, recall float64) float64 {
	if precision+recall > 0 {
		return 2 * precision * recall / (precision + recall)
	}
	return 0
}

// lcsLength uses two rolling rows so memory stays linear in len(b).
func lcsLength(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
