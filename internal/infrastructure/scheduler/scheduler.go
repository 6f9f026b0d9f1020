// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/keymantra/internal/infrastructure/config"
)

// Evictor drops idle practice sessions.
type Evictor interface {
	EvictIdle(now time.Time) int
}

// Scheduler owns the background jobs of the server.
type Scheduler struct {
	scheduler *gocron.Scheduler
	evictor   Evictor
	interval  time.Duration
	logger    *logrus.Logger
	clock     func() time.Time
}

// New creates a scheduler that sweeps idle sessions every janitor interval.
func New(cfg *config.Config, evictor Evictor, logger *logrus.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	interval := cfg.Dictation.JanitorInterval
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		scheduler: s,
		evictor:   evictor,
		interval:  interval,
		logger:    logger,
		clock:     time.Now,
	}
}

// Start registers the jobs and runs them without blocking.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.sweepSessions); err != nil {
		return fmt.Errorf("schedule session janitor: %w", err)
	}
	s.scheduler.StartAsync()
	s.logger.WithField("interval", s.interval).Info("session janitor started")
	return nil
}

// Stop terminates all scheduled jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) sweepSessions() {
	if n := s.evictor.EvictIdle(s.clock()); n > 0 {
		s.logger.WithField("evicted", n).Info("evicted idle practice sessions")
	}
}
