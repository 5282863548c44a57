package db

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dtnitsch/page-rescue/models"
	"gopkg.in/yaml.v3"
)

// ParseRecordID parses a positive record id argument.
func ParseRecordID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record ID: %s", arg)
	}
	return id, nil
}

// DecodeRecords parses a YAML or JSON array of records. Store-assigned ids in
// the input are dropped so imported rows get fresh ones.
func DecodeRecords(data []byte) ([]models.ReportRecord, error) {
	var records []models.ReportRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}
	for i := range records {
		if strings.TrimSpace(records[i].URL) == "" {
			return nil, fmt.Errorf("record %d: url is required", i)
		}
		records[i].ID = 0
	}
	return records, nil
}

func contentLabel(hasSnapshot bool, reconstruction string) string {
	switch {
	case hasSnapshot:
		return "snapshot"
	case reconstruction == models.ReconstructionFailed:
		return "failed"
	case reconstruction != "":
		return "reconstruction"
	default:
		return "-"
	}
}
