package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/widgetbox/internal/apperr"
)

type memoryStore struct {
	mu      sync.Mutex
	best    int
	has     bool
	saves   []int
	results []Result
	loadErr error
	saveErr error
}

func (m *memoryStore) LoadBest(context.Context) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, m.has, m.loadErr
}

func (m *memoryStore) SaveBest(_ context.Context, n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.best, m.has = n, true
	m.saves = append(m.saves, n)
	return nil
}

func (m *memoryStore) RecordResult(_ context.Context, r Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

func fixedTarget(target int) Option {
	return WithRand(func(int) int { return target - TargetMin })
}

func newGame(t *testing.T, store BestScoreStore, target int) (*GuessGame, *ManualScheduler) {
	t.Helper()
	sched := NewManualScheduler()
	g := NewGuessGame(context.Background(), store, WithScheduler(sched), fixedTarget(target))
	t.Cleanup(g.Close)
	return g, sched
}

func TestGuessScenario(t *testing.T) {
	t.Parallel()
	store := &memoryStore{}
	g, _ := newGame(t, store, 42)
	require.NoError(t, g.Start())

	var got []Feedback
	for _, in := range []string{"10", "60", "42"} {
		fb, err := g.Guess(in)
		require.NoError(t, err)
		got = append(got, fb)
	}
	require.Equal(t, []Feedback{TooLow, TooHigh, Correct}, got)
	require.Equal(t, "too low", got[0].String())
	require.Equal(t, "too high", got[1].String())

	snap := g.Snapshot()
	require.Equal(t, Finished, snap.State)
	require.Equal(t, 3, snap.Attempts)
	require.True(t, snap.NewBest)
	require.Equal(t, []int{3}, store.saves)
	require.Len(t, store.results, 1)
	require.Equal(t, 42, store.results[0].Target)
	require.Equal(t, snap.ID, store.results[0].SessionID)

	// the game is over: further guesses are rejected and do not count
	_, err := g.Guess("42")
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, 3, g.Snapshot().Attempts)
}

func TestGuessDirectionForEveryTarget(t *testing.T) {
	t.Parallel()
	for target := TargetMin; target <= TargetMax; target++ {
		g, _ := newGame(t, nil, target)
		require.NoError(t, g.Start())
		require.Equal(t, target, g.Snapshot().Target)
		for _, guess := range []int{GuessMin, target - 1, target + 1, GuessMax} {
			if guess == target || guess < GuessMin || guess > GuessMax {
				continue
			}
			fb, err := g.GuessValue(guess)
			require.NoError(t, err)
			if guess < target {
				require.Equal(t, TooLow, fb, "target %d guess %d", target, guess)
			} else {
				require.Equal(t, TooHigh, fb, "target %d guess %d", target, guess)
			}
		}
		before := g.Snapshot().Attempts
		fb, err := g.GuessValue(target)
		require.NoError(t, err)
		require.Equal(t, Correct, fb)
		require.Equal(t, before+1, g.Snapshot().Attempts)
		require.Equal(t, Finished, g.Snapshot().State)
	}
}

func TestGuessValidationLeavesStateAlone(t *testing.T) {
	t.Parallel()
	g, _ := newGame(t, nil, 50)

	_, err := g.Guess("10")
	require.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, g.Start())
	before := g.Snapshot()
	for _, bad := range []string{"", "ten", "4.2", "-1", "101"} {
		_, err := g.Guess(bad)
		require.True(t, apperr.IsValidation(err), bad)
	}
	require.Equal(t, before, g.Snapshot())

	// 0 and 100 are accepted attempts, not errors
	fb, err := g.Guess("0")
	require.NoError(t, err)
	require.Equal(t, TooLow, fb)
	fb, err = g.Guess(" 100 ")
	require.NoError(t, err)
	require.Equal(t, TooHigh, fb)
	require.Equal(t, 2, g.Snapshot().Attempts)
}

func TestGuessPauseBlocksGuessesAndTicks(t *testing.T) {
	t.Parallel()
	g, sched := newGame(t, nil, 7)
	require.NoError(t, g.Start())
	sched.FireN(3)
	require.Equal(t, 3, g.Snapshot().Elapsed)

	require.NoError(t, g.Pause())
	require.Equal(t, 0, sched.Active())
	_, err := g.Guess("7")
	require.ErrorIs(t, err, ErrInvalidTransition)
	sched.FireN(5)
	require.Equal(t, 3, g.Snapshot().Elapsed)
	require.Equal(t, 0, g.Snapshot().Attempts)

	require.NoError(t, g.Resume())
	sched.Fire()
	fb, err := g.Guess("7")
	require.NoError(t, err)
	require.Equal(t, Correct, fb)
	require.Equal(t, 4, g.Snapshot().Elapsed)
	require.Equal(t, 0, sched.Active())
}

func TestBestScoreOnlyImproves(t *testing.T) {
	t.Parallel()
	store := &memoryStore{best: 3, has: true}

	play := func(attempts int) GuessSnapshot {
		g, _ := newGame(t, store, 50)
		require.NoError(t, g.Start())
		for i := 1; i < attempts; i++ {
			_, err := g.GuessValue(1)
			require.NoError(t, err)
		}
		_, err := g.GuessValue(50)
		require.NoError(t, err)
		return g.Snapshot()
	}

	snap := play(5)
	require.False(t, snap.NewBest)
	require.Equal(t, 3, snap.Best)

	snap = play(3) // equal is not better
	require.False(t, snap.NewBest)
	require.Empty(t, store.saves)

	snap = play(2)
	require.True(t, snap.NewBest)
	require.Equal(t, 2, snap.Best)
	require.Equal(t, []int{2}, store.saves)
	require.Len(t, store.results, 3)
}

func TestBestScoreFirstGameAlwaysSaves(t *testing.T) {
	t.Parallel()
	store := &memoryStore{}
	g, _ := newGame(t, store, 1)
	require.False(t, g.Snapshot().HasBest)
	require.NoError(t, g.Start())
	for i := 0; i < 9; i++ {
		_, err := g.GuessValue(99)
		require.NoError(t, err)
	}
	_, err := g.GuessValue(1)
	require.NoError(t, err)
	require.Equal(t, []int{10}, store.saves)
}

func TestStoreFailuresAreNotEscalated(t *testing.T) {
	t.Parallel()
	store := &memoryStore{loadErr: errors.New("disk gone"), saveErr: errors.New("disk gone")}
	g, _ := newGame(t, store, 5)
	require.False(t, g.Snapshot().HasBest)
	require.NoError(t, g.Start())
	fb, err := g.GuessValue(5)
	require.NoError(t, err)
	require.Equal(t, Correct, fb)
	// the in-memory best still reflects the game
	require.Equal(t, 1, g.Snapshot().Best)
}

func TestGuessResetAndReplay(t *testing.T) {
	t.Parallel()
	g, sched := newGame(t, nil, 30)
	require.NoError(t, g.Start())
	_, _ = g.GuessValue(10)
	require.ErrorIs(t, g.Start(), ErrInvalidTransition)

	require.NoError(t, g.Reset())
	snap := g.Snapshot()
	require.Equal(t, Idle, snap.State)
	require.Zero(t, snap.Attempts)
	require.Zero(t, snap.Target)
	require.Equal(t, 0, sched.Active())

	require.NoError(t, g.Start())
	require.Equal(t, 1, sched.Active())
	require.Equal(t, 30, g.Snapshot().Target)
}

func TestGuessClosedIsNoop(t *testing.T) {
	t.Parallel()
	g, sched := newGame(t, nil, 30)
	require.NoError(t, g.Start())
	g.Close()
	require.Equal(t, 0, sched.Active())
	_, err := g.Guess("30")
	require.ErrorIs(t, err, ErrClosed)
	_, err = g.Guess("nope")
	require.ErrorIs(t, err, ErrClosed)
	require.Equal(t, Running, g.Snapshot().State)
}

func TestTargetsStayInRange(t *testing.T) {
	t.Parallel()
	for i := 0; i < 500; i++ {
		g := NewGuessGame(context.Background(), nil, WithScheduler(NewManualScheduler()))
		require.NoError(t, g.Start())
		target := g.Snapshot().Target
		require.GreaterOrEqual(t, target, TargetMin)
		require.LessOrEqual(t, target, TargetMax)
		g.Close()
	}
}
