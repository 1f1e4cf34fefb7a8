// Package jobs runs the portal's periodic maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/logging"
	"github.com/dmitrijs2005/citizenportal/internal/server/config"
	"github.com/dmitrijs2005/citizenportal/internal/server/metrics"
	"github.com/robfig/cron/v3"
)

const jobTimeout = time.Minute

type VoteCloser interface {
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

type NotificationRetrier interface {
	RetryFailed(ctx context.Context, maxAttempts int) (int, error)
}

type TokenPurger interface {
	PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler owns the cron instance. A job with an empty schedule is not
// registered.
type Scheduler struct {
	cron          *cron.Cron
	logger        logging.Logger
	votes         VoteCloser
	notifications NotificationRetrier
	tokens        TokenPurger
	maxAttempts   int
	now           func() time.Time
}

func NewScheduler(cfg *config.Config, l logging.Logger, votes VoteCloser, notifications NotificationRetrier, tokens TokenPurger) (*Scheduler, error) {
	s := &Scheduler{
		cron:          cron.New(),
		logger:        l.With("module", "jobs"),
		votes:         votes,
		notifications: notifications,
		tokens:        tokens,
		maxAttempts:   cfg.NotificationMaxAttempts,
		now:           time.Now,
	}

	jobs := []struct {
		name     string
		schedule string
		run      func(ctx context.Context) (int64, error)
	}{
		{"close_expired_votes", cfg.CloseVotesSchedule, s.closeExpiredVotes},
		{"retry_notifications", cfg.RetryNotificationsSchedule, s.retryNotifications},
		{"purge_refresh_tokens", cfg.TokenCleanupSchedule, s.purgeTokens},
	}
	for _, j := range jobs {
		if j.schedule == "" {
			continue
		}
		name, run := j.name, j.run
		if _, err := s.cron.AddFunc(j.schedule, func() { s.runJob(name, run) }); err != nil {
			return nil, fmt.Errorf("job %s: bad schedule %q: %w", name, j.schedule, err)
		}
	}

	return s, nil
}

// Run starts the scheduler and blocks until ctx is done and running jobs
// have finished.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info(ctx, "Starting job scheduler", "jobs", len(s.cron.Entries()))
	s.cron.Start()

	<-ctx.Done()

	s.logger.Info(ctx, "Stopping job scheduler...")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runJob(name string, run func(ctx context.Context) (int64, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := run(ctx)
	metrics.RecordJob(name, err == nil, time.Since(start))

	if err != nil {
		s.logger.Error(ctx, "job failed", "job", name, "error", err)
		return
	}
	if n > 0 {
		s.logger.Info(ctx, "job done", "job", name, "affected", n)
	}
}

func (s *Scheduler) closeExpiredVotes(ctx context.Context) (int64, error) {
	return s.votes.CloseExpired(ctx, s.now())
}

func (s *Scheduler) retryNotifications(ctx context.Context) (int64, error) {
	n, err := s.notifications.RetryFailed(ctx, s.maxAttempts)
	return int64(n), err
}

func (s *Scheduler) purgeTokens(ctx context.Context) (int64, error) {
	return s.tokens.PurgeExpiredTokens(ctx, s.now())
}
