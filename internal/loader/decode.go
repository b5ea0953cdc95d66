package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeArray decodes a top-level JSON array into records of type T. Unknown
// fields are ignored; a record of the wrong shape fails the whole payload.
func decodeArray[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	records := make([]T, len(raw))
	for i, item := range raw {
		if err := json.Unmarshal(item, &records[i]); err != nil {
			return nil, fmt.Errorf("%w: index %d: %w", ErrMalformedRecord, i, err)
		}
	}

	return records, nil
}
