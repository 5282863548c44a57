// Package evaluation scores stored AI reconstructions against the archived
// snapshots they were meant to replace.
package evaluation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/page-rescue/models"
	"github.com/dtnitsch/page-rescue/pkg/similarity"
)

// RecordSource streams every stored report record, in any order.
type RecordSource interface {
	Stream(ctx context.Context, fn func(models.ReportRecord) error) error
}

// TextExtractor turns a snapshot URL into reference text, "" on any failure.
type TextExtractor interface {
	Extract(ctx context.Context, snapshotURL string) string
}

// PairScorer scores one hypothesis against one reference.
type PairScorer interface {
	Score(reference, hypothesis string) similarity.Scores
}

type Options struct {
	MinTextLength int
}

type Evaluator struct {
	source    RecordSource
	extractor TextExtractor
	scorer    PairScorer
	minLength int
	logger    *slog.Logger
}

func NewEvaluator(source RecordSource, extractor TextExtractor, scorer PairScorer, logger *slog.Logger, opts Options) *Evaluator {
	minLength := opts.MinTextLength
	if minLength <= 0 {
		minLength = DefaultMinTextLength
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		source:    source,
		extractor: extractor,
		scorer:    scorer,
		minLength: minLength,
		logger:    logger,
	}
}

// Run scores every eligible record and returns the averaged summary. Records
// that cannot be scored are counted as skipped; only a failure of the record
// source itself aborts the run.
func (e *Evaluator) Run(ctx context.Context) (Summary, error) {
	acc := NewAccumulator()

	err := e.source.Stream(ctx, func(rec models.ReportRecord) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		reason := e.evaluate(ctx, rec, acc)
		if reason != SkipNone {
			acc.Skip(reason)
			e.logger.Debug("Record skipped", "url", rec.URL, "reason", string(reason))
		}
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("failed to stream records: %w", err)
	}

	summary := acc.Summary()
	e.logger.Info("Evaluation complete", "evaluated", summary.Evaluated, "skipped", summary.Skipped)
	return summary, nil
}

func (e *Evaluator) evaluate(ctx context.Context, rec models.ReportRecord, acc *Accumulator) SkipReason {
	if reason := CheckRecord(rec); reason != SkipNone {
		return reason
	}
	if !LongEnough(rec.AIReconstruction, e.minLength) {
		return SkipShortReconstruction
	}

	reference := e.extractor.Extract(ctx, rec.SnapshotURL)
	if !LongEnough(reference, e.minLength) {
		return SkipShortReference
	}

	scores := e.scorer.Score(reference, rec.AIReconstruction)
	acc.Add(scores)
	e.logger.Debug("Pair evaluated",
		"url", rec.URL,
		"bleu", scores.BLEU,
		"rouge1_f1", scores.Rouge1.F1,
		"rougeL_f1", scores.RougeL.F1,
	)
	return SkipNone
}
