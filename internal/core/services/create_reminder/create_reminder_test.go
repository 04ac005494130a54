package createreminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"taskminder/internal/core/domain/category"
	c "taskminder/internal/core/domain/common"
	"taskminder/internal/core/domain/logging"
	"taskminder/internal/core/domain/reminder"
	"taskminder/internal/core/domain/task"
	"taskminder/internal/core/domain/user"
	"taskminder/internal/core/services"
)

var Now = time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger     *logging.FakeLogger
	Users      *user.TestUserRepository
	Categories *category.TestCategoryRepository
	Tasks      *task.TestTaskRepository
	Reminders  *reminder.TestReminderRepository
	Service    services.Service[Input, Result]
	owner      user.User
	task       task.Task
}

func TestCreateReminderService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) SetupTest() {
	s.Logger = logging.NewFakeLogger()
	s.Users = user.NewTestUserRepository()
	s.Categories = category.NewTestCategoryRepository()
	s.Tasks = task.NewTestTaskRepository(s.Categories)
	s.Reminders = reminder.NewTestReminderRepository(s.Tasks)
	s.Service = New(
		s.Logger,
		s.Categories,
		s.Tasks,
		s.Reminders,
		func() time.Time { return Now },
	)

	var err error
	s.owner, err = s.Users.Create(context.Background(), user.CreateUserInput{
		Email: "owner@test.test", PasswordHash: "hash", CreatedAt: Now,
	})
	s.Require().NoError(err)
	cat, err := s.Categories.Create(context.Background(), category.CreateInput{
		Name: "Work", Type: "deadlines", CreatedBy: s.owner.ID, CreatedAt: Now,
	})
	s.Require().NoError(err)
	s.task, err = s.Tasks.Create(context.Background(), task.CreateInput{
		Title:      "File the report",
		DueDate:    Now.Add(24 * time.Hour),
		CategoryID: cat.ID,
		CreatedAt:  Now,
	})
	s.Require().NoError(err)
}

func (s *testSuite) TestSuccess() {
	at := Now.Add(12 * time.Hour)

	result, err := s.Service.Run(context.Background(), Input{
		UserID: s.owner.ID,
		TaskID: s.task.ID,
		Method: reminder.MethodEmail,
		At:     at,
	})

	s.Require().NoError(err)
	s.Equal(s.task.ID, result.Reminder.TaskID)
	s.Equal(reminder.MethodEmail, result.Reminder.Method)
	s.Equal(at, result.Reminder.At)
	s.Equal(Now, result.Reminder.CreatedAt)
	s.False(result.Reminder.IsSent())

	created, err := s.Reminders.GetByID(context.Background(), result.Reminder.ID)
	s.Require().NoError(err)
	s.Equal(result.Reminder, created)
}

func (s *testSuite) TestNonUTCTimeRejected() {
	loc := time.FixedZone("UTC+3", 3*3600)

	_, err := s.Service.Run(context.Background(), Input{
		UserID: s.owner.ID,
		TaskID: s.task.ID,
		Method: reminder.MethodEmail,
		At:     Now.Add(time.Hour).In(loc),
	})

	s.True(errors.Is(err, reminder.ErrReminderTimeNotUTC))
	s.Empty(s.Reminders.Reminders)
}

func (s *testSuite) TestTimeAfterTaskDueDateRejected() {
	_, err := s.Service.Run(context.Background(), Input{
		UserID: s.owner.ID,
		TaskID: s.task.ID,
		Method: reminder.MethodEmail,
		At:     s.task.DueDate.Add(time.Minute),
	})

	s.True(errors.Is(err, reminder.ErrReminderAfterTaskDue))
	s.Empty(s.Reminders.Reminders)
}

func (s *testSuite) TestTimeEqualToTaskDueDateAllowed() {
	result, err := s.Service.Run(context.Background(), Input{
		UserID: s.owner.ID,
		TaskID: s.task.ID,
		Method: reminder.MethodEmail,
		At:     s.task.DueDate,
	})

	s.Require().NoError(err)
	s.Equal(s.task.DueDate, result.Reminder.At)
}

func (s *testSuite) TestUnknownTask() {
	_, err := s.Service.Run(context.Background(), Input{
		UserID: s.owner.ID,
		TaskID: task.ID(999),
		Method: reminder.MethodEmail,
		At:     Now.Add(time.Hour),
	})

	s.True(errors.Is(err, task.ErrTaskDoesNotExist))
}

func (s *testSuite) TestTaskOwnedByAnotherUser() {
	other, err := s.Users.Create(context.Background(), user.CreateUserInput{
		Email: c.NewEmail("other@test.test"), PasswordHash: "hash", CreatedAt: Now,
	})
	s.Require().NoError(err)

	_, err = s.Service.Run(context.Background(), Input{
		UserID: other.ID,
		TaskID: s.task.ID,
		Method: reminder.MethodEmail,
		At:     Now.Add(time.Hour),
	})

	s.True(errors.Is(err, task.ErrTaskPermission))
	s.Empty(s.Reminders.Reminders)
}
