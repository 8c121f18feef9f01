package database

import (
	"context"
	"database/sql"

	"github.com/jask/widgetbox/internal/database/repository"
)

// Default values for keys other widgets read from the key-value store.
const (
	KeyTipPresets = "tip.presets"
)

// SeedDefaults ensures baseline settings exist for new databases.
// It is idempotent and never overwrites a value the user changed.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	kv := repository.NewKVRepo(db)
	defaults := map[string]string{
		KeyTipPresets: "10,15,20,25",
	}
	for key, value := range defaults {
		_, ok, err := kv.Get(ctx, key)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if err := kv.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}
