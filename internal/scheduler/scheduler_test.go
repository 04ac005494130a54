package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskminder/internal/core/domain/logging"
	dispatchduereminders "taskminder/internal/core/services/dispatch_due_reminders"
)

// blockingService counts runs and blocks until released.
type blockingService struct {
	runs    int32
	started chan struct{}
	release chan struct{}
}

func newBlockingService() *blockingService {
	return &blockingService{
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

func (s *blockingService) Run(
	ctx context.Context,
	input dispatchduereminders.Input,
) (dispatchduereminders.Result, error) {
	atomic.AddInt32(&s.runs, 1)
	s.started <- struct{}{}
	// Deliberately ignores ctx: models a tick finishing its current
	// dispatch+mark pair before honoring the stop signal.
	<-s.release
	return dispatchduereminders.Result{SentCount: 1}, nil
}

func (s *blockingService) Runs() int {
	return int(atomic.LoadInt32(&s.runs))
}

func TestTickOnceRunsService(t *testing.T) {
	service := newBlockingService()
	close(service.release)
	s := New(logging.NewFakeLogger(), service, time.Hour)

	result, err := s.TickOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.SentCount)
	assert.Equal(t, 1, service.Runs())
}

func TestOverlappingTickIsDropped(t *testing.T) {
	service := newBlockingService()
	s := New(logging.NewFakeLogger(), service, time.Hour)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := s.TickOnce(context.Background())
		assert.NoError(t, err)
	}()
	<-service.started

	// A second tick while the first is running must be a no-op, not
	// queued behind it.
	result, err := s.TickOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.SentCount)
	assert.Equal(t, 1, service.Runs())

	close(service.release)
	wg.Wait()
}

func TestStartFiresTicksOnInterval(t *testing.T) {
	service := newBlockingService()
	close(service.release)
	s := New(logging.NewFakeLogger(), service, 10*time.Millisecond)

	s.Start()
	defer s.Stop(context.Background())

	<-service.started
	<-service.started
	assert.GreaterOrEqual(t, service.Runs(), 2)
}

func TestStartDoesNotRunCatchUpTick(t *testing.T) {
	service := newBlockingService()
	close(service.release)
	s := New(logging.NewFakeLogger(), service, time.Hour)

	s.Start()
	defer s.Stop(context.Background())

	// First tick fires only after one full interval.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, service.Runs())
}

func TestStopWaitsForInFlightTick(t *testing.T) {
	service := newBlockingService()
	s := New(logging.NewFakeLogger(), service, 10*time.Millisecond)

	s.Start()
	<-service.started

	stopDone := make(chan error, 1)
	go func() {
		stopDone <- s.Stop(context.Background())
	}()

	select {
	case <-stopDone:
		t.Fatal("Stop returned while a tick was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	// Releasing the in-flight tick lets Stop complete.
	close(service.release)
	require.NoError(t, <-stopDone)
	assert.Equal(t, 1, service.Runs())
}

func TestStopBeforeStart(t *testing.T) {
	s := New(logging.NewFakeLogger(), newBlockingService(), time.Hour)
	require.NoError(t, s.Stop(context.Background()))
}

func TestStopTwice(t *testing.T) {
	service := newBlockingService()
	close(service.release)
	s := New(logging.NewFakeLogger(), service, time.Hour)
	s.Start()

	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}
