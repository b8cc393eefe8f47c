package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic transcript compaction sweep.
type Scheduler struct {
	cron      *cron.Cron
	ctx       context.Context
	cancel    context.CancelFunc
	sweepFunc func(ctx context.Context) error
}

func New(sweep func(ctx context.Context) error) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		ctx:       ctx,
		cancel:    cancel,
		sweepFunc: sweep,
	}
}

// Start registers the sweep on the given cron spec and starts the runner.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.sweepFunc(s.ctx); err != nil {
			log.Printf("transcript compaction sweep failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("scheduler started - transcript compaction runs on %q", spec)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Printf("scheduler stopped")
}
