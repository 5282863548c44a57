package evaluation

import (
	"github.com/dtnitsch/page-rescue/pkg/similarity"
)

// Accumulator collects per-pair scores for one evaluation run.
type Accumulator struct {
	bleu    []float64
	rouge1  []float64
	rougeL  []float64
	skipped map[SkipReason]int
}

func NewAccumulator() *Accumulator {
	return &Accumulator{skipped: make(map[SkipReason]int)}
}

func (a *Accumulator) Add(s similarity.Scores) {
	a.bleu = append(a.bleu, s.BLEU)
	a.rouge1 = append(a.rouge1, s.Rouge1.F1)
	a.rougeL = append(a.rougeL, s.RougeL.F1)
}

func (a *Accumulator) Skip(reason SkipReason) {
	a.skipped[reason]++
}

// Count is the number of evaluated pairs so far.
func (a *Accumulator) Count() int {
	return len(a.bleu)
}

// Summary averages the collected scores. With no pairs every average is zero
// and Summary.Empty reports true.
func (a *Accumulator) Summary() Summary {
	s := Summary{Evaluated: a.Count()}
	if len(a.skipped) > 0 {
		s.Skipped = make(map[string]int, len(a.skipped))
		for reason, n := range a.skipped {
			s.Skipped[string(reason)] = n
		}
	}
	if s.Evaluated == 0 {
		return s
	}
	s.AvgBLEU = mean(a.bleu)
	s.AvgRouge1F1 = mean(a.rouge1)
	s.AvgRougeLF1 = mean(a.rougeL)
	return s
}

// Summary is the aggregated outcome of an evaluation run.
type Summary struct {
	Evaluated   int            `json:"evaluated" yaml:"evaluated"`
	Skipped     map[string]int `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	AvgBLEU     float64        `json:"avg_bleu" yaml:"avg_bleu"`
	AvgRouge1F1 float64        `json:"avg_rouge1_f1" yaml:"avg_rouge1_f1"`
	AvgRougeLF1 float64        `json:"avg_rougeL_f1" yaml:"avg_rougeL_f1"`
}

// Empty reports whether no pair was evaluated.
func (s Summary) Empty() bool {
	return s.Evaluated == 0
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
