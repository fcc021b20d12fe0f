package growth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/khoahotran/growth-tracker/internal/localstore"
)

// LoadSnapshot returns false when nothing is stored under StorageKey.
func LoadSnapshot(ctx context.Context, store localstore.Store) (Data, bool, error) {
	return loadData(ctx, store, StorageKey)
}

func SaveSnapshot(ctx context.Context, store localstore.Store, d Data) error {
	return saveData(ctx, store, StorageKey, d)
}

func loadData(ctx context.Context, store localstore.Store, key string) (Data, bool, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, localstore.ErrNotFound) {
			return Data{}, false, nil
		}
		return Data{}, false, err
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return Data{}, false, fmt.Errorf("parse stored snapshot %s: %w", key, err)
	}
	d.normalize()
	return d, true, nil
}

func saveData(ctx context.Context, store localstore.Store, key string, d Data) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return store.Set(ctx, key, raw)
}
