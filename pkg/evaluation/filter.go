package evaluation

import (
	"unicode/utf8"

	"github.com/dtnitsch/page-rescue/models"
)

// DefaultMinTextLength is the shortest text, in characters, worth scoring.
const DefaultMinTextLength = 50

// SkipReason says why a record did not produce a scored pair.
type SkipReason string

const (
	SkipNone                 SkipReason = ""
	SkipMissingFields        SkipReason = "missing_fields"
	SkipFailedReconstruction SkipReason = "failed_reconstruction"
	SkipShortReference       SkipReason = "short_reference"
	SkipShortReconstruction  SkipReason = "short_reconstruction"
)

// CheckRecord applies the eligibility rule: a snapshot URL and a reconstruction
// must both be present, and the reconstruction must not be the failure sentinel.
func CheckRecord(rec models.ReportRecord) SkipReason {
	if !rec.HasSnapshot() || rec.AIReconstruction == "" {
		return SkipMissingFields
	}
	if !rec.HasReconstruction() {
		if rec.AIReconstruction == models.ReconstructionFailed {
			return SkipFailedReconstruction
		}
		return SkipMissingFields
	}
	return SkipNone
}

// LongEnough reports whether text has at least minLen characters.
func LongEnough(text string, minLen int) bool {
	return utf8.RuneCountInString(text) >= minLen
}
