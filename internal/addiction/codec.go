package addiction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// customListVersion is the current envelope version for the stored custom
// tracker list. Version 0 is the legacy mobile format, a bare JSON array.
const customListVersion = 1

type customListEnvelope struct {
	Version int          `json:"version"`
	Records []QuitRecord `json:"records"`
}

// EncodeCustomList serializes the custom tracker list for the record store.
func EncodeCustomList(records []QuitRecord) (string, error) {
	if records == nil {
		records = []QuitRecord{}
	}
	data, err := json.Marshal(customListEnvelope{
		Version: customListVersion,
		Records: records,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode custom addiction list: %w", err)
	}
	return string(data), nil
}

// DecodeCustomList parses a stored custom tracker list. Both the current
// envelope and the legacy bare-array format decode; records without an id
// or title are dropped instead of failing the whole list.
func DecodeCustomList(raw string) ([]QuitRecord, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	var records []QuitRecord
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &records); err != nil {
			return nil, fmt.Errorf("failed to decode custom addiction list: %w", err)
		}
	} else {
		var env customListEnvelope
		if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
			return nil, fmt.Errorf("failed to decode custom addiction list: %w", err)
		}
		records = env.Records
	}

	valid := records[:0]
	for _, r := range records {
		if r.ID == "" || r.Title == "" {
			continue
		}
		valid = append(valid, r)
	}
	return valid, nil
}
