// Package rescue handles a broken-page report: find an archived copy, or
// generate a stand-in, and record the outcome.
package rescue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/page-rescue/internal/common"
	"github.com/dtnitsch/page-rescue/models"
	"github.com/dtnitsch/page-rescue/pkg/metrics"
	"github.com/dtnitsch/page-rescue/pkg/wayback"
)

var (
	// ErrLookup wraps failures to reach or understand the archive.
	ErrLookup = errors.New("archive lookup failed")
	// ErrStore wraps failures to persist the record.
	ErrStore = errors.New("failed to store record")
)

// SnapshotFinder locates the closest archived copy of a page.
type SnapshotFinder interface {
	Closest(ctx context.Context, pageURL string) (wayback.Snapshot, bool, error)
}

// Reconstructor generates stand-in content for a page.
type Reconstructor interface {
	Reconstruct(ctx context.Context, pageURL string) (string, error)
}

// RecordStore persists report records.
type RecordStore interface {
	InsertRecord(ctx context.Context, rec models.ReportRecord) (int64, error)
}

type Service struct {
	finder        SnapshotFinder
	reconstructor Reconstructor
	store         RecordStore
	model         string
	logger        *slog.Logger
}

// NewService wires the report flow. model only labels reconstruction metrics.
func NewService(finder SnapshotFinder, reconstructor Reconstructor, store RecordStore, model string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		finder:        finder,
		reconstructor: reconstructor,
		store:         store,
		model:         model,
		logger:        logger,
	}
}

// Report resolves pageURL to an archived snapshot or, failing that, an AI
// reconstruction, stores the record and returns it. A generation failure is
// not an error: the record carries models.ReconstructionFailed instead.
func (s *Service) Report(ctx context.Context, pageURL string) (models.ReportRecord, error) {
	cleaned, err := common.ValidateURL(pageURL)
	if err != nil {
		return models.ReportRecord{}, err
	}
	rec := models.ReportRecord{URL: cleaned, CreatedAt: time.Now().UTC()}

	start := time.Now()
	snap, found, err := s.finder.Closest(ctx, cleaned)
	metrics.ObserveLookup(time.Since(start).Seconds())
	if err != nil {
		metrics.RecordReport(metrics.OutcomeLookupError)
		s.logger.Error("Wayback lookup failed", "url", cleaned, "error", err)
		return models.ReportRecord{}, fmt.Errorf("%w: %w", ErrLookup, err)
	}

	outcome := metrics.OutcomeArchived
	if found {
		rec.Archived = true
		rec.SnapshotURL = snap.URL
		s.logger.Info("Snapshot found", "url", cleaned, "snapshot_url", snap.URL, "timestamp", snap.Timestamp)
	} else {
		rec.AIReconstruction, outcome = s.reconstruct(ctx, cleaned)
	}

	id, err := s.store.InsertRecord(ctx, rec)
	if err != nil {
		metrics.RecordReport(metrics.OutcomeStoreError)
		s.logger.Error("Failed to store record", "url", cleaned, "error", err)
		return models.ReportRecord{}, fmt.Errorf("%w: %w", ErrStore, err)
	}
	rec.ID = id

	metrics.RecordReport(outcome)
	return rec, nil
}

func (s *Service) reconstruct(ctx context.Context, pageURL string) (string, string) {
	if s.reconstructor == nil {
		s.logger.Warn("No reconstructor configured", "url", pageURL)
		return models.ReconstructionFailed, metrics.OutcomeFailed
	}

	start := time.Now()
	content, err := s.reconstructor.Reconstruct(ctx, pageURL)
	metrics.ObserveReconstruction(s.model, time.Since(start).Seconds())
	if err != nil {
		s.logger.Warn("AI reconstruction failed", "url", pageURL, "error", err)
		return models.ReconstructionFailed, metrics.OutcomeFailed
	}

	s.logger.Info("Page reconstructed", "url", pageURL, "length", len(content))
	return content, metrics.OutcomeReconstructed
}
