package serve

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dtnitsch/page-rescue/internal/common"
	"github.com/dtnitsch/page-rescue/models"
	"github.com/dtnitsch/page-rescue/pkg/metrics"
	"github.com/dtnitsch/page-rescue/pkg/rescue"
)

const maxRequestBytes = 1 << 20

// Reporter runs one broken-page report.
type Reporter interface {
	Report(ctx context.Context, pageURL string) (models.ReportRecord, error)
}

type reportRequest struct {
	URL string `json:"url"`
}

type reportResponse struct {
	Archived         bool   `json:"archived"`
	SnapshotURL      string `json:"snapshot_url,omitempty"`
	AIReconstruction string `json:"ai_reconstruction,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewMux registers every endpoint of the service.
func NewMux(reporter Reporter, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/report404", instrument("/report404", ReportHandler(reporter, logger)))
	mux.Handle("/healthz", instrument("/healthz", HealthzHandler()))
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

// ReportHandler answers POST /report404 with either the snapshot address or
// the generated reconstruction.
func ReportHandler(reporter Reporter, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
			return
		}

		var req reportRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}
		if req.URL == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url is required"})
			return
		}

		rec, err := reporter.Report(r.Context(), req.URL)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, common.ErrInvalidURL):
				status = http.StatusBadRequest
			case errors.Is(err, rescue.ErrLookup):
				status = http.StatusBadGateway
			}
			logger.Error("Report failed", "url", req.URL, "status", status, "error", err)
			writeJSON(w, status, errorResponse{Error: err.Error()})
			return
		}

		resp := reportResponse{Archived: rec.Archived}
		if rec.Archived {
			resp.SnapshotURL = rec.SnapshotURL
		} else {
			resp.AIReconstruction = rec.AIReconstruction
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func instrument(endpoint string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.RecordRequest(endpoint, strconv.Itoa(rec.status))
	})
}
