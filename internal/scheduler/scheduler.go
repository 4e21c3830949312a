// Package scheduler runs the periodic maintenance jobs of the portal.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/tpcell/portal/internal/pkg/metrics"
)

// JobCloser closes open JAFs whose application deadline has passed
type JobCloser interface {
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenPurger deletes expired and revoked refresh tokens
type TokenPurger interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// OTPPurger deletes expired email verification codes
type OTPPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Config holds the cron specs of each job
type Config struct {
	CloseExpiredJobs string
	PurgeTokens      string
}

// Scheduler wraps a cron runner with the maintenance jobs
type Scheduler struct {
	cron    *cron.Cron
	jobs    JobCloser
	tokens  TokenPurger
	otps    OTPPurger
	timeout time.Duration
	now     func() time.Time
	logger  zerolog.Logger
}

// New registers the maintenance jobs. It fails on an invalid cron spec.
func New(cfg Config, jobs JobCloser, tokens TokenPurger, otps OTPPurger, logger zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		jobs:    jobs,
		tokens:  tokens,
		otps:    otps,
		timeout: time.Minute,
		now:     time.Now,
		logger:  logger,
	}

	if _, err := s.cron.AddFunc(cfg.CloseExpiredJobs, func() { s.run("close_expired_jobs", s.closeExpiredJobs) }); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(cfg.PurgeTokens, func() { s.run("purge_credentials", s.purgeCredentials) }); err != nil {
		return nil, err
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("Starting scheduler")
	s.cron.Start()
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) run(name string, job func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	err := job(ctx)
	metrics.RecordJobRun(name, time.Since(start), err == nil)
	if err != nil {
		s.logger.Error().Err(err).Str("job", name).Msg("Scheduled job failed")
	}
}

func (s *Scheduler) closeExpiredJobs(ctx context.Context) error {
	n, err := s.jobs.CloseExpired(ctx, s.now())
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info().Int64("closed", n).Msg("Closed JAFs past their application deadline")
	}
	return nil
}

func (s *Scheduler) purgeCredentials(ctx context.Context) error {
	tokens, err := s.tokens.CleanupExpiredTokens(ctx)
	if err != nil {
		return err
	}
	otps, err := s.otps.PurgeExpired(ctx, s.now())
	if err != nil {
		return err
	}
	s.logger.Debug().Int64("tokens", tokens).Int64("otps", otps).Msg("Purged expired credentials")
	return nil
}
