// Package extractor fetches archived snapshots and reduces them to reference text.
package extractor

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/url"

	"github.com/dtnitsch/page-rescue/models"
	"github.com/dtnitsch/page-rescue/pkg/caching"
	"github.com/dtnitsch/page-rescue/pkg/fetcher"
	"github.com/dtnitsch/page-rescue/pkg/parser"
)

// Failure categories attached to extraction log lines.
const (
	ErrTypeTimeout    = "timeout"
	ErrTypeCanceled   = "canceled"
	ErrTypeHTTPStatus = "http_status"
	ErrTypeNetwork    = "network"
	ErrTypeParse      = "parse"
)

// Options tune how snapshot HTML is cleaned.
type Options struct {
	DenyTags []string
	Mode     string // models.ExtractModeDenyList or models.ExtractModeReadability
	Cache    *caching.Cache
}

// Extractor implements the reference text contract: fetch, clean, normalize,
// and never surface an error to the caller.
type Extractor struct {
	fetcher  *fetcher.Fetcher
	cache    *caching.Cache
	denyTags []string
	mode     string
	logger   *slog.Logger
}

func New(f *fetcher.Fetcher, logger *slog.Logger, opts Options) *Extractor {
	denyTags := opts.DenyTags
	if len(denyTags) == 0 {
		denyTags = models.DefaultDenyTags
	}
	mode := opts.Mode
	if mode == "" {
		mode = models.ExtractModeDenyList
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		fetcher:  f,
		cache:    opts.Cache,
		denyTags: denyTags,
		mode:     mode,
		logger:   logger,
	}
}

// Extract returns the visible, whitespace-normalized text of the snapshot at
// snapshotURL, or "" if it cannot be fetched or parsed.
func (e *Extractor) Extract(ctx context.Context, snapshotURL string) string {
	body, err := e.load(ctx, snapshotURL)
	if err != nil {
		e.logger.Warn("Error loading snapshot", "url", snapshotURL, "error_type", Categorize(err), "error", err)
		return ""
	}

	var text string
	if e.mode == models.ExtractModeReadability {
		text, err = parser.ReadableText(snapshotURL, string(body), e.denyTags)
	} else {
		text, err = parser.VisibleText(string(body), e.denyTags)
	}
	if err != nil {
		e.logger.Warn("Error cleaning snapshot", "url", snapshotURL, "error_type", ErrTypeParse, "error", err)
		return ""
	}
	return text
}

func (e *Extractor) load(ctx context.Context, snapshotURL string) ([]byte, error) {
	if body, ok := e.cache.Get(snapshotURL); ok {
		e.logger.Debug("Snapshot cache hit", "url", snapshotURL)
		return body, nil
	}

	body, err := e.fetcher.GetHtmlBytes(ctx, snapshotURL)
	if err != nil {
		return nil, err
	}

	if err := e.cache.Set(snapshotURL, body); err != nil {
		e.logger.Warn("Failed to cache snapshot", "url", snapshotURL, "error", err)
	}
	return body, nil
}

// Categorize maps a fetch error to one of the ErrType constants.
func Categorize(err error) string {
	var statusErr *fetcher.StatusError
	if errors.As(err, &statusErr) {
		return ErrTypeHTTPStatus
	}
	if errors.Is(err, context.Canceled) {
		return ErrTypeCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTypeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTypeTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ErrTypeNetwork
	}
	return ErrTypeParse
}
