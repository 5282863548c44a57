package wayback

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseAvailability(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantOK    bool
		wantURL   string
		wantError bool
	}{
		{
			name: "snapshot available",
			payload: `{"url":"example.com","archived_snapshots":{"closest":{"status":"200","available":true,
				"url":"http://web.archive.org/web/20130919044612/http://example.com/","timestamp":"20130919044612"}}}`,
			wantOK:  true,
			wantURL: "http://web.archive.org/web/20130919044612/http://example.com/",
		},
		{
			name:    "no snapshots",
			payload: `{"url":"nothing.example","archived_snapshots":{}}`,
		},
		{
			name:    "snapshot not available",
			payload: `{"archived_snapshots":{"closest":{"available":false,"url":"http://web.archive.org/x"}}}`,
		},
		{
			name:    "closest without url",
			payload: `{"archived_snapshots":{"closest":{"available":true}}}`,
		},
		{
			name:      "malformed json",
			payload:   `{"archived_snapshots":`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, ok, err := parseAvailability([]byte(tt.payload))
			if (err != nil) != tt.wantError {
				t.Fatalf("parseAvailability() error = %v, wantError %v", err, tt.wantError)
			}
			if ok != tt.wantOK {
				t.Errorf("parseAvailability() ok = %v, want %v", ok, tt.wantOK)
			}
			if snap.URL != tt.wantURL {
				t.Errorf("parseAvailability() url = %q, want %q", snap.URL, tt.wantURL)
			}
		})
	}
}

func TestClosest(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != availablePath {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("url")
		fmt.Fprint(w, `{"archived_snapshots":{"closest":{"available":true,"status":"200",
			"url":"http://web.archive.org/web/2020/https://example.com/a?b=c","timestamp":"20200101000000"}}}`)
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", time.Second)
	snap, ok, err := c.Closest(context.Background(), "https://example.com/a?b=c")
	if err != nil {
		t.Fatalf("Closest() error = %v", err)
	}
	if !ok {
		t.Fatal("Closest() found no snapshot")
	}
	if gotQuery != "https://example.com/a?b=c" {
		t.Errorf("query url = %q, want the page URL unmangled", gotQuery)
	}
	if snap.Timestamp != "20200101000000" {
		t.Errorf("Timestamp = %s", snap.Timestamp)
	}
}

func TestClosest_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)
	if _, _, err := c.Closest(context.Background(), "https://example.com"); err == nil {
		t.Error("Closest() with 503 should fail")
	}

	closed := httptest.NewServer(http.NotFoundHandler())
	addr := closed.URL
	closed.Close()
	if _, _, err := NewClient(addr, time.Second).Closest(context.Background(), "https://example.com"); err == nil {
		t.Error("Closest() against closed server should fail")
	}
}
