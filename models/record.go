package models

import (
	"strings"
	"time"
)

// ReconstructionFailed is stored in place of generated content when the LLM call fails.
const ReconstructionFailed = "AI reconstruction failed."

// ReportRecord is one broken-page report as persisted in the document store.
type ReportRecord struct {
	ID               int64     `json:"id,omitempty" yaml:"id,omitempty"`
	URL              string    `json:"url" yaml:"url"`
	Archived         bool      `json:"archived" yaml:"archived"`
	SnapshotURL      string    `json:"snapshot_url,omitempty" yaml:"snapshot_url,omitempty"`
	AIReconstruction string    `json:"ai_reconstruction,omitempty" yaml:"ai_reconstruction,omitempty"`
	CreatedAt        time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// HasSnapshot reports whether the record points at an archived copy.
func (r ReportRecord) HasSnapshot() bool {
	return strings.TrimSpace(r.SnapshotURL) != ""
}

// HasReconstruction reports whether the record carries usable generated content.
// The failure sentinel does not count.
func (r ReportRecord) HasReconstruction() bool {
	if strings.TrimSpace(r.AIReconstruction) == "" {
		return false
	}
	return r.AIReconstruction != ReconstructionFailed
}
