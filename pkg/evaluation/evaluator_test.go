package evaluation

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/page-rescue/models"
	"github.com/dtnitsch/page-rescue/pkg/extractor"
	"github.com/dtnitsch/page-rescue/pkg/fetcher"
	"github.com/dtnitsch/page-rescue/pkg/similarity"
)

const (
	longText  = "The river path follows the old mill race for two miles past the weir."
	otherText = "A completely unrelated paragraph about baking sourdough bread at home."
)

type memorySource struct {
	records []models.ReportRecord
	err     error
}

func (m *memorySource) Stream(ctx context.Context, fn func(models.ReportRecord) error) error {
	if m.err != nil {
		return m.err
	}
	for _, rec := range m.records {
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

type mapExtractor struct {
	pages map[string]string
	calls int
}

func (m *mapExtractor) Extract(_ context.Context, snapshotURL string) string {
	m.calls++
	return m.pages[snapshotURL]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEvaluator(records []models.ReportRecord, pages map[string]string) (*Evaluator, *mapExtractor) {
	ex := &mapExtractor{pages: pages}
	ev := NewEvaluator(&memorySource{records: records}, ex, similarity.NewScorer(similarity.DefaultConfig()), discardLogger(), Options{})
	return ev, ex
}

func TestRun_EmptyStore(t *testing.T) {
	ev, _ := newTestEvaluator(nil, nil)
	summary, err := ev.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !summary.Empty() {
		t.Fatalf("Run() evaluated %d pairs, want 0", summary.Evaluated)
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, summary); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if got, want := buf.String(), NoValidPairsMessage+"\n"; got != want {
		t.Errorf("WriteText() = %q, want %q", got, want)
	}
}

func TestRun_SkipsIneligibleRecords(t *testing.T) {
	records := []models.ReportRecord{
		{URL: "a", Archived: false, AIReconstruction: longText},
		{URL: "b", Archived: true, SnapshotURL: "http://snap/b"},
		{URL: "c", Archived: true, SnapshotURL: "http://snap/c", AIReconstruction: models.ReconstructionFailed},
		{URL: "d", Archived: true, SnapshotURL: "http://snap/d", AIReconstruction: "too short"},
		{URL: "e", Archived: true, SnapshotURL: "http://snap/e", AIReconstruction: longText},
		{URL: "f", Archived: true, SnapshotURL: "http://snap/f", AIReconstruction: longText},
	}
	pages := map[string]string{
		"http://snap/e": "short page",
		// f is unreachable: the extractor yields "".
	}

	ev, ex := newTestEvaluator(records, pages)
	summary, err := ev.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Evaluated != 0 {
		t.Errorf("Evaluated = %d, want 0", summary.Evaluated)
	}
	want := map[string]int{
		string(SkipMissingFields):        2,
		string(SkipFailedReconstruction): 1,
		string(SkipShortReconstruction):  1,
		string(SkipShortReference):       2,
	}
	for reason, n := range want {
		if summary.Skipped[reason] != n {
			t.Errorf("Skipped[%s] = %d, want %d", reason, summary.Skipped[reason], n)
		}
	}
	if ex.calls != 2 {
		t.Errorf("extractor calls = %d, want 2 (only records passing the cheap checks)", ex.calls)
	}
}

func TestRun_AveragesScores(t *testing.T) {
	records := []models.ReportRecord{
		{URL: "same", Archived: true, SnapshotURL: "http://snap/same", AIReconstruction: longText},
		{URL: "diff", Archived: true, SnapshotURL: "http://snap/diff", AIReconstruction: otherText},
	}
	pages := map[string]string{
		"http://snap/same": longText,
		"http://snap/diff": longText,
	}

	ev, _ := newTestEvaluator(records, pages)
	summary, err := ev.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Evaluated != 2 {
		t.Fatalf("Evaluated = %d, want 2", summary.Evaluated)
	}

	scorer := similarity.NewScorer(similarity.DefaultConfig())
	same := scorer.Score(longText, longText)
	diff := scorer.Score(longText, otherText)
	wantBLEU := (same.BLEU + diff.BLEU) / 2
	if math.Abs(summary.AvgBLEU-wantBLEU) > 1e-9 {
		t.Errorf("AvgBLEU = %v, want %v", summary.AvgBLEU, wantBLEU)
	}
	wantR1 := (same.Rouge1.F1 + diff.Rouge1.F1) / 2
	if math.Abs(summary.AvgRouge1F1-wantR1) > 1e-9 {
		t.Errorf("AvgRouge1F1 = %v, want %v", summary.AvgRouge1F1, wantR1)
	}
	for _, v := range []float64{summary.AvgBLEU, summary.AvgRouge1F1, summary.AvgRougeLF1} {
		if v < 0 || v > 1 {
			t.Errorf("average %v out of [0,1]", v)
		}
	}
}

func TestRun_SourceError(t *testing.T) {
	boom := errors.New("store unavailable")
	ev := NewEvaluator(&memorySource{err: boom}, &mapExtractor{}, similarity.NewScorer(similarity.DefaultConfig()), discardLogger(), Options{})
	if _, err := ev.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want wrapped %v", err, boom)
	}
}

func TestRun_Canceled(t *testing.T) {
	records := []models.ReportRecord{
		{URL: "a", Archived: true, SnapshotURL: "http://snap/a", AIReconstruction: longText},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ev, ex := newTestEvaluator(records, map[string]string{"http://snap/a": longText})
	if _, err := ev.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if ex.calls != 0 {
		t.Errorf("extractor calls = %d, want 0", ex.calls)
	}
}

func TestRun_CustomMinLength(t *testing.T) {
	records := []models.ReportRecord{
		{URL: "a", Archived: true, SnapshotURL: "http://snap/a", AIReconstruction: "tiny page text"},
	}
	ex := &mapExtractor{pages: map[string]string{"http://snap/a": "tiny page text"}}
	ev := NewEvaluator(&memorySource{records: records}, ex, similarity.NewScorer(similarity.DefaultConfig()), discardLogger(), Options{MinTextLength: 5})

	summary, err := ev.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Evaluated != 1 {
		t.Errorf("Evaluated = %d, want 1", summary.Evaluated)
	}
}

func TestCheckRecord(t *testing.T) {
	tests := []struct {
		name string
		rec  models.ReportRecord
		want SkipReason
	}{
		{"eligible", models.ReportRecord{SnapshotURL: "s", AIReconstruction: "r"}, SkipNone},
		{"no snapshot", models.ReportRecord{AIReconstruction: "r"}, SkipMissingFields},
		{"blank snapshot", models.ReportRecord{SnapshotURL: "  ", AIReconstruction: "r"}, SkipMissingFields},
		{"no reconstruction", models.ReportRecord{SnapshotURL: "s"}, SkipMissingFields},
		{"blank reconstruction", models.ReportRecord{SnapshotURL: "s", AIReconstruction: "\n"}, SkipMissingFields},
		{"failure sentinel", models.ReportRecord{SnapshotURL: "s", AIReconstruction: models.ReconstructionFailed}, SkipFailedReconstruction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckRecord(tt.rec); got != tt.want {
				t.Errorf("CheckRecord() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLongEnough(t *testing.T) {
	if !LongEnough(strings.Repeat("a", 50), 50) {
		t.Error("50 characters should meet a minimum of 50")
	}
	if LongEnough(strings.Repeat("a", 49), 50) {
		t.Error("49 characters should not meet a minimum of 50")
	}
	// Counted in characters, not bytes.
	if LongEnough(strings.Repeat("é", 30), 50) {
		t.Error("30 two-byte characters should not meet a minimum of 50")
	}
}

func TestRun_WithSnapshotServer(t *testing.T) {
	const sentence = "The quick brown fox jumps over the lazy dog near the river bank today"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/same":
			io.WriteString(w, "<html><body><nav>Menu</nav><p>"+sentence+"</p><script>x()</script></body></html>")
		case "/slow":
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	records := []models.ReportRecord{
		{URL: "https://example.com/same", Archived: true, SnapshotURL: server.URL + "/same", AIReconstruction: sentence},
		{URL: "https://example.com/slow", Archived: true, SnapshotURL: server.URL + "/slow", AIReconstruction: sentence},
		{URL: "https://example.com/gone", Archived: true, SnapshotURL: server.URL + "/gone", AIReconstruction: sentence},
	}
	ex := extractor.New(fetcher.NewFetcher(100*time.Millisecond), discardLogger(), extractor.Options{})
	ev := NewEvaluator(&memorySource{records: records}, ex, similarity.NewScorer(similarity.DefaultConfig()), discardLogger(), Options{})

	summary, err := ev.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Evaluated != 1 {
		t.Fatalf("Evaluated = %d, want 1", summary.Evaluated)
	}
	if summary.Skipped[string(SkipShortReference)] != 2 {
		t.Errorf("Skipped[short_reference] = %d, want 2", summary.Skipped[string(SkipShortReference)])
	}
	if math.Abs(summary.AvgBLEU-1) > 1e-9 || summary.AvgRouge1F1 != 1 || summary.AvgRougeLF1 != 1 {
		t.Errorf("Summary = %+v, want perfect scores", summary)
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, summary); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Evaluated 1 valid page reconstructions:\nAverage BLEU Score   : 1.0000\n") {
		t.Errorf("WriteText() = %q", buf.String())
	}
}
