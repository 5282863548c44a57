package db

import (
	"testing"
	"time"

	"github.com/dtnitsch/page-rescue/models"
)

func TestParseRecordID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{" 42 ", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseRecordID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRecordID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRecordID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDecodeRecords(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    int
		wantErr bool
	}{
		{
			name: "json export",
			data: `[{"id": 7, "url": "https://a.example", "archived": true, "snapshot_url": "http://web.archive.org/a", ` +
				`"created_at": "2024-05-01T12:00:00Z"}, ` +
				`{"url": "https://b.example", "archived": false, "ai_reconstruction": "<p>b</p>"}]`,
			want: 2,
		},
		{
			name: "yaml export",
			data: "- url: https://a.example\n  archived: false\n  ai_reconstruction: AI reconstruction failed.\n",
			want: 1,
		},
		{name: "empty array", data: "[]", want: 0},
		{name: "missing url", data: `[{"archived": true}]`, wantErr: true},
		{name: "not an array", data: `{"url": "https://a.example"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRecords([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeRecords() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != tt.want {
				t.Errorf("DecodeRecords() returned %d records, want %d", len(got), tt.want)
			}
			for _, rec := range got {
				if rec.ID != 0 {
					t.Errorf("DecodeRecords() kept id %d", rec.ID)
				}
			}
		})
	}

	got, err := DecodeRecords([]byte(`[{"url": "https://a.example", "created_at": "2024-05-01T12:00:00Z"}]`))
	if err != nil {
		t.Fatalf("DecodeRecords() error = %v", err)
	}
	if want := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC); !got[0].CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", got[0].CreatedAt, want)
	}
	if got[0].AIReconstruction != "" {
		t.Errorf("AIReconstruction = %q, want empty", got[0].AIReconstruction)
	}
}

func TestContentLabel(t *testing.T) {
	tests := []struct {
		snapshot bool
		recon    string
		want     string
	}{
		{true, "", "snapshot"},
		{false, models.ReconstructionFailed, "failed"},
		{false, "<p>x</p>", "reconstruction"},
		{false, "", "-"},
	}
	for _, tt := range tests {
		if got := contentLabel(tt.snapshot, tt.recon); got != tt.want {
			t.Errorf("contentLabel(%v, %q) = %q, want %q", tt.snapshot, tt.recon, got, tt.want)
		}
	}
}
