package watcher

import (
	"context"
	"fmt"
	"time"

	"c3track/internal/config"
	"c3track/internal/pipeline"
)

// Service runs extraction batches on a fixed interval until the context is
// cancelled. Cycle errors are logged, not fatal: the next tick retries.
type Service struct {
	svc *pipeline.Service
	cfg config.Config
}

func NewService(svc *pipeline.Service, cfg config.Config) *Service {
	return &Service{svc: svc, cfg: cfg}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(ctx); err != nil {
			fmt.Printf("watch cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.WatchIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle(ctx context.Context) error {
	result, err := s.svc.ExtractAppointments(ctx, s.cfg.WatchBatchLimit)
	if err != nil {
		return err
	}
	fmt.Printf("watch cycle done trace=%s items=%d saved=%s\n", result.TraceID, result.Count, result.SavedPath)
	return nil
}
