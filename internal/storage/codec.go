package storage

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/mmynk/chitfund/internal/models"
)

// Encode serializes a group snapshot.
func Encode(data *models.GroupData) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode group: %w", err)
	}
	return raw, nil
}

// Decode parses a snapshot. Legacy snapshots (schema version 0) store
// calendar dates without a time, which are expanded to midnight UTC first.
func Decode(raw []byte) (*models.GroupData, error) {
	var probe struct {
		SchemaVersion int `json:"schemaVersion"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode group: %w", err)
	}

	if probe.SchemaVersion == 0 {
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return nil, fmt.Errorf("failed to decode legacy group: %w", err)
		}
		expandDates(generic)
		normalized, err := json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize legacy group: %w", err)
		}
		raw = normalized
	}

	var data models.GroupData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode group: %w", err)
	}
	return &data, nil
}

var dateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var dateKeys = map[string]bool{
	"joiningDate": true,
	"date":        true,
	"timestamp":   true,
	"createdAt":   true,
	"publishedAt": true,
}

func expandDates(v any) {
	switch v := v.(type) {
	case map[string]any:
		for k, child := range v {
			if s, ok := child.(string); ok && dateKeys[k] && dateOnly.MatchString(s) {
				v[k] = s + "T00:00:00Z"
				continue
			}
			expandDates(child)
		}
	case []any:
		for _, child := range v {
			expandDates(child)
		}
	}
}
