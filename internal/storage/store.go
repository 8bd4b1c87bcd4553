// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"fmt"

	"github.com/mmynk/chitfund/internal/models"
)

// Store persists the whole group as one snapshot.
// This abstraction allows swapping storage backends (SQLite, files, etc.)
// without changing the ledger.
type Store interface {
	// Load returns the stored group, or nil and no error when nothing has
	// been saved yet. The result has not been migrated.
	Load(ctx context.Context) (*models.GroupData, error)

	// Save replaces the stored group with data.
	Save(ctx context.Context, data *models.GroupData) error

	// Close releases any resources held by the store.
	Close() error
}

// Open loads the group from store, creating a new group named name when the
// store is empty. Loaded data is migrated and written back if the migration
// changed it.
func Open(ctx context.Context, store Store, name string) (*models.GroupData, error) {
	data, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if data == nil {
		data = NewGroup(name)
		if err := store.Save(ctx, data); err != nil {
			return nil, fmt.Errorf("failed to save new group: %w", err)
		}
		return data, nil
	}

	changed, err := Migrate(data)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := store.Save(ctx, data); err != nil {
			return nil, fmt.Errorf("failed to save migrated group: %w", err)
		}
	}
	return data, nil
}
