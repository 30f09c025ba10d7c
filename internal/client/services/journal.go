package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/mybank/internal/client/repositories/metadata"
)

// appendRecord appends v to the JSON array stored under key. A value that
// is not a JSON array is replaced by a fresh one.
func appendRecord(ctx context.Context, store metadata.Repository, key string, v any) error {
	entry, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s entry: %w", key, err)
	}

	return store.Update(ctx, key, func(old []byte) ([]byte, error) {
		var list []json.RawMessage
		if len(old) > 0 {
			if err := json.Unmarshal(old, &list); err != nil {
				list = nil
			}
		}
		list = append(list, entry)
		return json.Marshal(list)
	})
}

// readRecords decodes the JSON array stored under key.
func readRecords[T any](ctx context.Context, store metadata.Repository, key string) ([]T, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}
