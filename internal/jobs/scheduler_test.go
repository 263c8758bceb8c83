package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionSweeper struct {
	calls   int
	removed int64
	err     error
}

func (f *fakeSessionSweeper) DeleteExpired(_ context.Context) (int64, error) {
	f.calls++
	return f.removed, f.err
}

type fakeResetSweeper struct {
	calls   int
	removed int64
	err     error
}

func (f *fakeResetSweeper) DeleteExpiredOrUsed(_ context.Context) (int64, error) {
	f.calls++
	return f.removed, f.err
}

func TestSweepsInvokeStores(t *testing.T) {
	sessions := &fakeSessionSweeper{removed: 3}
	resets := &fakeResetSweeper{removed: 1}
	s := NewScheduler(sessions, resets, zerolog.Nop())

	s.sweepSessions()
	s.sweepResetTokens()

	assert.Equal(t, 1, sessions.calls)
	assert.Equal(t, 1, resets.calls)
}

func TestSweepFailureDoesNotPanic(t *testing.T) {
	sessions := &fakeSessionSweeper{err: errors.New("db down")}
	resets := &fakeResetSweeper{err: errors.New("db down")}
	s := NewScheduler(sessions, resets, zerolog.Nop())

	s.sweepSessions()
	s.sweepResetTokens()

	assert.Equal(t, 1, sessions.calls)
	assert.Equal(t, 1, resets.calls)
}

func TestStopWaitsForIdleCron(t *testing.T) {
	s := NewScheduler(&fakeSessionSweeper{}, &fakeResetSweeper{}, zerolog.Nop())
	require.NoError(t, s.Start())

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return for an idle scheduler")
	}
}
