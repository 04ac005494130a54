package dispatchduereminders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"taskminder/internal/core/domain/category"
	"taskminder/internal/core/domain/logging"
	"taskminder/internal/core/domain/reminder"
	"taskminder/internal/core/domain/task"
	"taskminder/internal/core/domain/user"
	"taskminder/internal/core/services"
)

var Now = time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

const lookahead = 10 * time.Minute

type testSuite struct {
	suite.Suite
	logger     *logging.FakeLogger
	users      *user.TestUserRepository
	categories *category.TestCategoryRepository
	tasks      *task.TestTaskRepository
	reminders  *reminder.TestReminderRepository
	dispatcher *reminder.FakeDispatcher
	service    services.Service[Input, Result]
	task       task.Task
}

func TestDispatchDueRemindersService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.logger = logging.NewFakeLogger()
	s.users = user.NewTestUserRepository()
	s.categories = category.NewTestCategoryRepository()
	s.tasks = task.NewTestTaskRepository(s.categories)
	s.reminders = reminder.NewTestReminderRepository(s.tasks)
	s.dispatcher = reminder.NewFakeDispatcher()
	s.service = New(
		s.logger,
		s.reminders,
		s.dispatcher,
		lookahead,
		func() time.Time { return Now },
	)

	u, err := s.users.Create(context.Background(), user.CreateUserInput{
		Email: "owner@test.test", PasswordHash: "hash", CreatedAt: Now,
	})
	s.Require().NoError(err)
	cat, err := s.categories.Create(context.Background(), category.CreateInput{
		Name: "Vehicle", Type: "maintenance", CreatedBy: u.ID, CreatedAt: Now,
	})
	s.Require().NoError(err)
	s.task, err = s.tasks.Create(context.Background(), task.CreateInput{
		Title:      "Oil change",
		DueDate:    Now.Add(48 * time.Hour),
		CategoryID: cat.ID,
		CreatedAt:  Now,
	})
	s.Require().NoError(err)
}

func (s *testSuite) createReminder(at time.Time) reminder.Reminder {
	s.T().Helper()
	rem, err := s.reminders.Create(context.Background(), reminder.CreateInput{
		TaskID: s.task.ID, Method: reminder.MethodEmail, At: at, CreatedAt: Now,
	})
	s.Require().NoError(err)
	return rem
}

func (s *testSuite) TestReminderWithinLookaheadIsSent() {
	rem := s.createReminder(Now.Add(5 * time.Minute))

	result, err := s.service.Run(context.Background(), Input{})

	s.Require().NoError(err)
	s.Equal(1, result.SelectedCount)
	s.Equal(1, result.SentCount)
	s.Equal([]reminder.ID{rem.ID}, s.dispatcher.DispatchedIDs())

	stored, err := s.reminders.GetByID(context.Background(), rem.ID)
	s.Require().NoError(err)
	s.True(stored.IsSent())
	s.Equal(Now, stored.SentAt.Value)
}

func (s *testSuite) TestReminderBeyondLookaheadIsNotSelected() {
	s.createReminder(Now.Add(15 * time.Minute))

	result, err := s.service.Run(context.Background(), Input{})

	s.Require().NoError(err)
	s.Equal(0, result.SelectedCount)
	s.Empty(s.dispatcher.DispatchedIDs())
}

func (s *testSuite) TestReminderAfterTaskDueDateIsNeverSelected() {
	overdueTask, err := s.tasks.Create(context.Background(), task.CreateInput{
		Title:      "Missed deadline",
		DueDate:    Now.Add(-time.Hour),
		CategoryID: s.task.CategoryID,
		CreatedAt:  Now,
	})
	s.Require().NoError(err)
	_, err = s.reminders.Create(context.Background(), reminder.CreateInput{
		TaskID: overdueTask.ID, Method: reminder.MethodEmail, At: Now.Add(time.Minute), CreatedAt: Now,
	})
	s.Require().NoError(err)

	result, err := s.service.Run(context.Background(), Input{})

	s.Require().NoError(err)
	s.Equal(0, result.SelectedCount)
}

func (s *testSuite) TestRemindersDispatchedInFireTimeOrder() {
	third := s.createReminder(Now.Add(9 * time.Minute))
	first := s.createReminder(Now.Add(time.Minute))
	second := s.createReminder(Now.Add(4 * time.Minute))

	result, err := s.service.Run(context.Background(), Input{})

	s.Require().NoError(err)
	s.Equal(3, result.SentCount)
	s.Equal([]reminder.ID{first.ID, second.ID, third.ID}, s.dispatcher.DispatchedIDs())
}

func (s *testSuite) TestOverdueReminderIsSkipped() {
	s.createReminder(Now.Add(-30 * time.Second))
	sent := s.createReminder(Now.Add(2 * time.Minute))

	result, err := s.service.Run(context.Background(), Input{})

	s.Require().NoError(err)
	s.Equal(2, result.SelectedCount)
	s.Equal(1, result.SkippedCount)
	s.Equal(1, result.SentCount)
	s.Equal([]reminder.ID{sent.ID}, s.dispatcher.DispatchedIDs())
}

func (s *testSuite) TestTransportFailureLeavesReminderUnsentAndRetried() {
	rem := s.createReminder(Now.Add(3 * time.Minute))
	s.dispatcher.Errors[rem.ID] = reminder.NewTransportError(
		reminder.MethodEmail, errors.New("smtp connection refused"),
	)

	result, err := s.service.Run(context.Background(), Input{})

	s.Require().NoError(err)
	s.Equal(1, result.FailedCount)
	s.Equal(0, result.SentCount)
	stored, err := s.reminders.GetByID(context.Background(), rem.ID)
	s.Require().NoError(err)
	s.False(stored.IsSent())

	// The transport recovers, the next tick picks the reminder up again.
	delete(s.dispatcher.Errors, rem.ID)
	result, err = s.service.Run(context.Background(), Input{})

	s.Require().NoError(err)
	s.Equal(1, result.SentCount)
	stored, err = s.reminders.GetByID(context.Background(), rem.ID)
	s.Require().NoError(err)
	s.True(stored.IsSent())
}

func (s *testSuite) TestOrphanedReminderIsSkippedAndTickContinues() {
	orphaned := s.createReminder(Now.Add(time.Minute))
	sent := s.createReminder(Now.Add(2 * time.Minute))
	s.dispatcher.Errors[orphaned.ID] = reminder.ErrReminderOrphaned

	result, err := s.service.Run(context.Background(), Input{})

	s.Require().NoError(err)
	s.Equal(2, result.SelectedCount)
	s.Equal(1, result.FailedCount)
	s.Equal(1, result.SentCount)
	s.Equal([]reminder.ID{sent.ID}, s.dispatcher.DispatchedIDs())

	stored, err := s.reminders.GetByID(context.Background(), orphaned.ID)
	s.Require().NoError(err)
	s.False(stored.IsSent())
}

func (s *testSuite) TestAlreadySentIsTreatedAsSuccess() {
	rem := s.createReminder(Now.Add(time.Minute))
	other := s.createReminder(Now.Add(2 * time.Minute))
	s.Require().NoError(s.reminders.MarkSent(context.Background(), rem.ID, Now))

	// rem is already sent so only other is selected; simulate the race by
	// running two overlapping ticks over the same store instead.
	result, err := s.service.Run(context.Background(), Input{})

	s.Require().NoError(err)
	s.Equal(1, result.SelectedCount)
	s.Equal([]reminder.ID{other.ID}, s.dispatcher.DispatchedIDs())
}

func (s *testSuite) TestOverlappingTicksSendEachReminderOnce() {
	const reminderCount = 10
	for i := 0; i < reminderCount; i++ {
		s.createReminder(Now.Add(time.Duration(i) * time.Second))
	}

	var wg sync.WaitGroup
	results := make([]Result, 2)
	runErrs := make([]error, 2)
	wg.Add(2)
	for i := 0; i < 2; i++ {
		i := i
		go func() {
			defer wg.Done()
			results[i], runErrs[i] = s.service.Run(context.Background(), Input{})
		}()
	}
	wg.Wait()

	s.Require().NoError(runErrs[0])
	s.Require().NoError(runErrs[1])

	// Both ticks may have dispatched, but the conditional write admits
	// exactly one sent transition per reminder.
	s.Equal(reminderCount, results[0].SentCount+results[1].SentCount)
	for id, rem := range s.reminders.Reminders {
		s.True(rem.IsSent(), "reminder %d must be sent", id)
	}
}

func (s *testSuite) TestStoreFailureAbortsTick() {
	s.createReminder(Now.Add(time.Minute))
	storeErr := errors.New("connection refused")
	s.reminders.SelectDueError = storeErr

	_, err := s.service.Run(context.Background(), Input{})

	s.Require().ErrorIs(err, storeErr)
	s.Empty(s.dispatcher.DispatchedIDs())
}

func (s *testSuite) TestMarkSentStoreFailureAbortsRemainderOfTick() {
	s.createReminder(Now.Add(time.Minute))
	s.createReminder(Now.Add(2 * time.Minute))
	storeErr := errors.New("connection reset")
	s.reminders.MarkSentError = storeErr

	result, err := s.service.Run(context.Background(), Input{})

	s.Require().ErrorIs(err, storeErr)
	s.Equal(0, result.SentCount)
	// Only the first reminder was attempted before the abort.
	s.Len(s.dispatcher.DispatchedIDs(), 1)
}

func (s *testSuite) TestSentAtUsesTheClockCapturedAtTickStart() {
	rem := s.createReminder(Now.Add(time.Minute))

	// An advancing clock: the tick observes one consistent time for both
	// the lookahead bound and the sent timestamps.
	current := Now
	service := New(s.logger, s.reminders, s.dispatcher, lookahead, func() time.Time {
		t := current
		current = current.Add(30 * time.Second)
		return t
	})

	_, err := service.Run(context.Background(), Input{})

	s.Require().NoError(err)
	stored, err := s.reminders.GetByID(context.Background(), rem.ID)
	s.Require().NoError(err)
	s.Equal(Now, stored.SentAt.Value)
}

// cancellingDispatcher cancels the run context while a send is in
// flight, the way a stop request arriving mid-send does.
type cancellingDispatcher struct {
	inner  *reminder.FakeDispatcher
	cancel context.CancelFunc
}

func (d *cancellingDispatcher) Dispatch(ctx context.Context, rem reminder.Reminder) error {
	d.cancel()
	return d.inner.Dispatch(ctx, rem)
}

// strictContextRepository refuses writes on a cancelled context the way
// a real driver does.
type strictContextRepository struct {
	*reminder.TestReminderRepository
}

func (r *strictContextRepository) MarkSent(ctx context.Context, id reminder.ID, sentAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.TestReminderRepository.MarkSent(ctx, id, sentAt)
}

func (s *testSuite) TestStopDuringSendStillCommitsSentState() {
	first := s.createReminder(Now.Add(time.Minute))
	s.createReminder(Now.Add(2 * time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service := New(
		s.logger,
		&strictContextRepository{TestReminderRepository: s.reminders},
		&cancellingDispatcher{inner: s.dispatcher, cancel: cancel},
		lookahead,
		func() time.Time { return Now },
	)

	result, err := service.Run(ctx, Input{})

	// The stop arrived while the first notification was being sent. Its
	// sent-state write must still commit, otherwise the reminder stays
	// eligible and the user gets the notification twice after restart.
	// The second reminder waits for the next tick.
	s.Require().NoError(err)
	s.Equal(1, result.SentCount)
	s.Equal([]reminder.ID{first.ID}, s.dispatcher.DispatchedIDs())

	stored, err := s.reminders.GetByID(context.Background(), first.ID)
	s.Require().NoError(err)
	s.True(stored.IsSent())
}

func (s *testSuite) TestCancelledContextStopsBetweenReminders() {
	s.createReminder(Now.Add(time.Minute))
	s.createReminder(Now.Add(2 * time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.service.Run(ctx, Input{})

	// Selection already happened, cancellation stops the loop without an
	// error so nothing is dispatched mid-write.
	s.Require().NoError(err)
	s.Equal(0, result.SentCount)
	s.Empty(s.dispatcher.DispatchedIDs())
}
