package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/logging"
	"taskminder/internal/core/services"
	dispatchduereminders "taskminder/internal/core/services/dispatch_due_reminders"
)

const DEFAULT_INTERVAL = time.Minute

// Scheduler drives the dispatch service on a fixed interval. At most one
// tick runs at a time: a timer fire while a tick is still running is
// dropped, not queued.
type Scheduler struct {
	log      logging.Logger
	service  services.Service[dispatchduereminders.Input, dispatchduereminders.Result]
	interval time.Duration

	running   int32
	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	stopped   chan struct{}
	done      chan struct{}
}

func New(
	log logging.Logger,
	service services.Service[dispatchduereminders.Input, dispatchduereminders.Result],
	interval time.Duration,
) *Scheduler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if interval <= 0 {
		interval = DEFAULT_INTERVAL
	}
	return &Scheduler{
		log:      log,
		service:  service,
		interval: interval,
		stopped:  make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the timer loop. The first tick fires after one full
// interval, there is no catch-up scan at startup.
func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		go s.run(ctx)
		s.log.Info(
			ctx,
			"Reminder scheduler started.",
			logging.Entry("intervalMinutes", s.interval.Minutes()),
		)
	})
}

// Stop halts the timer and waits for an in-flight tick to finish its
// current reminder. Safe to call more than once. The context bounds the
// wait.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.stopped)
		if s.cancel != nil {
			s.cancel()
		} else {
			// Never started, nothing is running.
			close(s.done)
		}
	})
	select {
	case <-s.done:
		s.log.Info(ctx, "Reminder scheduler stopped.")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TickOnce runs a single tick synchronously. It shares the overlap guard
// with the timer loop, so a tick already in progress makes it a no-op.
func (s *Scheduler) TickOnce(ctx context.Context) (dispatchduereminders.Result, error) {
	return s.tick(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopped:
			return
		case <-ticker.C:
			if _, err := s.tick(ctx); err != nil {
				s.log.Error(
					ctx,
					"Tick failed, reminders stay pending until the next tick.",
					logging.Entry("err", err),
				)
			}
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) (result dispatchduereminders.Result, err error) {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		s.log.Warning(ctx, "Previous tick is still running, this tick is dropped.")
		return result, nil
	}
	defer atomic.StoreInt32(&s.running, 0)

	return s.service.Run(ctx, dispatchduereminders.Input{})
}
