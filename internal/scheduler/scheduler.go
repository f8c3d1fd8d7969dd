package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Warmer refreshes cached table views.
type Warmer interface {
	Warm(ctx context.Context, tops []int)
}

// Scheduler manages the cron tasks.
type Scheduler struct {
	Cron   *cron.Cron
	Warmer Warmer
	Tops   []int
	Ctx    context.Context
}

// NewScheduler creates a new Scheduler. Specs have six fields, seconds first.
func NewScheduler(ctx context.Context, w Warmer, tops []int) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Warmer: w,
		Tops:   tops,
		Ctx:    ctx,
	}
}

// RegisterWarm registers the cache warm-up task.
func (s *Scheduler) RegisterWarm(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.warmTask); err != nil {
		return fmt.Errorf("register warm task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("entries", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunWarmNow executes the warm-up immediately.
func (s *Scheduler) RunWarmNow() {
	s.warmTask()
}

func (s *Scheduler) warmTask() {
	if s.Ctx.Err() != nil {
		return
	}
	log.Info().Ints("tops", s.Tops).Msg("warming table cache")
	s.Warmer.Warm(s.Ctx, s.Tops)
}
