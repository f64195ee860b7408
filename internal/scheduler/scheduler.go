// Package scheduler runs the scheduled ingestion in-process for
// deployments without an external cron service.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/YusukeAsk/016-worldhappynews/internal/service"
)

// Morning, noon, and evening runs in the configured timezone.
const fetchSpec = "0 7,12,19 * * *"

type Scheduler struct {
	cron   *cron.Cron
	svc    *service.Service
	logger *slog.Logger
}

// New builds a scheduler in the given timezone (Asia/Tokyo by
// default); an unknown timezone falls back to UTC.
func New(svc *service.Service, timezone string, logger *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("unknown timezone, using UTC", "timezone", timezone)
		loc = time.UTC
	}

	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		svc:    svc,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(fetchSpec, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := s.svc.RunScheduledFetch(ctx)
	if err != nil {
		s.logger.Error("scheduled fetch failed", "err", err)
		return
	}
	s.logger.Info("scheduled fetch done",
		"registered", res.Registered,
		"relaxedAdded", res.RelaxedAdded,
		"countToday", res.CountToday)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
