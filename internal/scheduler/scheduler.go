package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"dayplanner/internal/clock"
	"dayplanner/pkg/metrics"
)

// Job is one periodic unit of work. A returned error (or panic) is logged
// and counted; it never stops the schedule.
type Job func(ctx context.Context) error

type entry struct {
	name     string
	job      Job
	interval time.Duration // interval jobs
	daily    bool          // daily-at jobs
	hour     int
	minute   int
}

// Scheduler runs registered jobs on their own tickers until stopped. It is
// an explicitly constructed value: build it, register jobs, Start, Stop.
type Scheduler struct {
	logger  *zap.Logger
	clock   clock.Clock
	entries []entry

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(clk clock.Clock, logger *zap.Logger) *Scheduler {
	return &Scheduler{logger: logger, clock: clk}
}

// AddInterval registers a job that runs immediately on start and then every
// interval.
func (s *Scheduler) AddInterval(name string, interval time.Duration, job Job) {
	s.entries = append(s.entries, entry{name: name, job: job, interval: interval})
}

// AddDailyAt registers a job that runs once a day at hour:minute UTC.
func (s *Scheduler) AddDailyAt(name string, hour, minute int, job Job) {
	s.entries = append(s.entries, entry{name: name, job: job, daily: true, hour: hour, minute: minute})
}

func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	for _, e := range s.entries {
		s.wg.Add(1)
		if e.daily {
			go s.runDaily(ctx, e)
		} else {
			go s.runInterval(ctx, e)
		}
	}
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.entries)))
}

// Stop cancels all job loops and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) runInterval(ctx context.Context, e entry) {
	defer s.wg.Done()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	s.runOnce(ctx, e)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Job loop stopped", zap.String("job", e.name))
			return
		case <-ticker.C:
			s.runOnce(ctx, e)
		}
	}
}

func (s *Scheduler) runDaily(ctx context.Context, e entry) {
	defer s.wg.Done()

	for {
		delay := untilNext(s.clock.Now(), e.hour, e.minute)
		timer := time.NewTimer(delay)

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Job loop stopped", zap.String("job", e.name))
			return
		case <-timer.C:
			s.runOnce(ctx, e)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, e entry) {
	defer func() {
		if r := recover(); r != nil {
			metrics.JobFailures.WithLabelValues(e.name).Inc()
			s.logger.Error("Job panicked", zap.String("job", e.name), zap.Any("panic", r))
		}
	}()

	start := time.Now()
	err := e.job(ctx)
	metrics.ObserveJob(e.name, start, err)
	if err != nil {
		s.logger.Error("Job failed", zap.String("job", e.name), zap.Error(err))
	}
}

// untilNext returns the wait until the next hh:mm UTC, strictly in the
// future.
func untilNext(now time.Time, hour, minute int) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}
