package repository

import "time"

// Entry is one key-value row.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// GameResult records one finished game.
type GameResult struct {
	ID             string
	SessionID      string
	Widget         string
	Target         int
	Attempts       int
	ElapsedSeconds int
	FinishedAt     time.Time
}
