package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Job represents a scheduled job
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs jobs on fixed intervals until stopped
type Scheduler struct {
	jobs    []Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewScheduler creates a scheduler bound to parent. Cancelling parent stops
// the jobs like Stop does.
func NewScheduler(parent context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(parent)
	return &Scheduler{
		jobs:   make([]Job, 0),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob adds a job to the scheduler
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) error {
	if interval <= 0 {
		return fmt.Errorf("cron job %s: interval must be positive", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("cron job %s: scheduler already started", name)
	}
	s.jobs = append(s.jobs, Job{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
	slog.Info("Cron job registered", "name", name, "interval", interval.String())
	return nil
}

// Jobs returns the registered job names
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for _, job := range s.jobs {
		names = append(names, job.Name)
	}
	return names
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels the jobs and waits for the running ones to return
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// runJob runs a single job on its schedule
func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	// Run immediately on start
	s.executeJob(s.ctx, job)

	for {
		select {
		case <-s.ctx.Done():
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-ticker.C:
			s.executeJob(s.ctx, job)
		}
	}
}

// executeJob executes a job and logs results. A panicking job is logged and
// keeps its schedule.
func (s *Scheduler) executeJob(ctx context.Context, job Job) (err error) {
	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("cron job %s panicked: %v", job.Name, p)
		}
		if err != nil {
			slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
			return
		}
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}()

	return job.Fn(ctx)
}

// RunOnce runs every job once in registration order and returns their errors
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	var errs []error
	for _, job := range jobs {
		if err := s.executeJob(ctx, job); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
