package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/widgetbox/internal/database"
)

// MaintenanceService houses destructive actions surfaced through the CLI and TUI.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes scores, history and stored settings, then re-seeds defaults. The
// schema stays intact so the app can keep running.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"game_results", "kv"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return database.SeedDefaults(ctx, s.DB)
}

// ResetBest forgets the guessing game's best score and keeps the history.
func (s *MaintenanceService) ResetBest(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, KeyBestScore); err != nil {
		return fmt.Errorf("reset best score: %w", err)
	}
	return nil
}
