package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SessionSweeper and ResetSweeper are the repository slices the expiry
// sweeps need.
type SessionSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

type ResetSweeper interface {
	DeleteExpiredOrUsed(ctx context.Context) (int64, error)
}

// Scheduler runs the hourly expiry sweeps: dead sessions and spent or
// expired reset tokens. Failures are logged and retried on the next tick.
type Scheduler struct {
	cron     *cron.Cron
	sessions SessionSweeper
	resets   ResetSweeper
	log      zerolog.Logger
}

func NewScheduler(sessions SessionSweeper, resets ResetSweeper, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		sessions: sessions,
		resets:   resets,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 */1 * * *", s.sweepSessions); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 30 */1 * * *", s.sweepResetTokens); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits up to five seconds for an in-flight
// sweep to finish.
func (s *Scheduler) Stop() {
	select {
	case <-s.cron.Stop().Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("sweep still running at shutdown")
	}
}

func (s *Scheduler) sweepSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("session sweep failed")
		return
	}
	if removed > 0 {
		s.log.Info().Int64("removed", removed).Msg("expired sessions swept")
	}
}

func (s *Scheduler) sweepResetTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.resets.DeleteExpiredOrUsed(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("reset token sweep failed")
		return
	}
	if removed > 0 {
		s.log.Info().Int64("removed", removed).Msg("dead reset tokens swept")
	}
}
