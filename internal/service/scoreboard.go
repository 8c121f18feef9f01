package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/widgetbox/internal/database/repository"
	"github.com/jask/widgetbox/internal/session"
)

// KeyBestScore is where the guessing game's best attempt count lives.
const KeyBestScore = "guess.high_score"

const widgetGuess = "guess"

// Scoreboard persists guessing-game scores. It satisfies
// session.BestScoreStore and session.ResultRecorder.
type Scoreboard struct {
	KV      *repository.KVRepo
	Results *repository.ResultRepo
	Log     *zap.Logger
}

var (
	_ session.BestScoreStore = (*Scoreboard)(nil)
	_ session.ResultRecorder = (*Scoreboard)(nil)
)

func (s *Scoreboard) LoadBest(ctx context.Context) (int, bool, error) {
	n, ok, err := s.KV.GetInt(ctx, KeyBestScore)
	if err != nil {
		return 0, false, fmt.Errorf("load best score: %w", err)
	}
	if ok && n <= 0 {
		return 0, false, nil
	}
	return n, ok, nil
}

// SaveBest stores attempts if it beats the stored best. A lower score saved by
// another process in the meantime is kept.
func (s *Scoreboard) SaveBest(ctx context.Context, attempts int) error {
	if attempts <= 0 {
		return fmt.Errorf("save best score: invalid attempt count %d", attempts)
	}
	changed, err := s.KV.SetIntIfLower(ctx, KeyBestScore, attempts)
	if err != nil {
		return fmt.Errorf("save best score: %w", err)
	}
	if !changed {
		s.logger().Debug("stored best score is already lower", zap.Int("attempts", attempts))
	}
	return nil
}

func (s *Scoreboard) RecordResult(ctx context.Context, r session.Result) error {
	if s.Results == nil {
		return nil
	}
	err := s.Results.Add(ctx, repository.GameResult{
		ID:             uuid.NewString(),
		SessionID:      r.SessionID,
		Widget:         widgetGuess,
		Target:         r.Target,
		Attempts:       r.Attempts,
		ElapsedSeconds: r.ElapsedSeconds,
		FinishedAt:     r.FinishedAt,
	})
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	return nil
}

// History returns the newest finished games.
func (s *Scoreboard) History(ctx context.Context, limit int) ([]repository.GameResult, error) {
	if s.Results == nil {
		return nil, nil
	}
	return s.Results.Recent(ctx, widgetGuess, limit)
}

// Played counts finished games.
func (s *Scoreboard) Played(ctx context.Context) (int, error) {
	if s.Results == nil {
		return 0, nil
	}
	return s.Results.Count(ctx, widgetGuess)
}

func (s *Scoreboard) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
