package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"

	"taskminder/internal/core/domain/category"
	c "taskminder/internal/core/domain/common"
	"taskminder/internal/core/domain/reminder"
	"taskminder/internal/core/domain/task"
	"taskminder/internal/core/domain/user"
	"taskminder/internal/db"
	dbcategory "taskminder/internal/db/category"
	dbtask "taskminder/internal/db/task"
	dbuser "taskminder/internal/db/user"
)

var (
	Now = time.Now().UTC().Truncate(time.Millisecond)
	At  = Now.Add(5 * time.Minute)
)

type testSuite struct {
	suite.Suite
	pool         *pgxpool.Pool
	repo         *PgxReminderRepository
	userRepo     *dbuser.PgxUserRepository
	categoryRepo *dbcategory.PgxCategoryRepository
	taskRepo     *dbtask.PgxTaskRepository
	user         user.User
	category     category.Category
	task         task.Task
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
	suite.userRepo = dbuser.NewPgxRepository(suite.pool)
	suite.categoryRepo = dbcategory.NewPgxRepository(suite.pool)
	suite.taskRepo = dbtask.NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (s *testSuite) SetupTest() {
	var err error
	s.user, err = s.userRepo.Create(context.Background(), user.CreateUserInput{
		Email:        c.NewEmail("test@test.test"),
		PasswordHash: user.PasswordHash("test"),
		CreatedAt:    Now,
	})
	s.Require().NoError(err)
	s.category, err = s.categoryRepo.Create(context.Background(), category.CreateInput{
		Name:      "Work",
		Type:      "deadlines",
		CreatedBy: s.user.ID,
		CreatedAt: Now,
	})
	s.Require().NoError(err)
	s.task, err = s.taskRepo.Create(context.Background(), task.CreateInput{
		Title:      "File the report",
		DueDate:    Now.Add(24 * time.Hour),
		CategoryID: s.category.ID,
		CreatedAt:  Now,
	})
	s.Require().NoError(err)
}

func (s *testSuite) TearDownTest() {
	db.TruncateTables(s.pool)
}

func TestPgxReminderRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCreateAndGet() {
	created, err := s.repo.Create(context.Background(), reminder.CreateInput{
		TaskID:    s.task.ID,
		Method:    reminder.MethodEmail,
		At:        At,
		CreatedAt: Now,
	})

	s.Require().NoError(err)
	s.False(created.IsSent())

	got, err := s.repo.GetByID(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
	s.Equal(s.task.ID, got.TaskID)
	s.Equal(reminder.MethodEmail, got.Method)
	s.True(At.Equal(got.At))
	s.False(got.IsSent())
}

func (s *testSuite) TestGetUnknownID() {
	_, err := s.repo.GetByID(context.Background(), reminder.ID(12345))
	s.ErrorIs(err, reminder.ErrReminderDoesNotExist)
}

func (s *testSuite) TestSelectDueWindow() {
	within := s.createReminder(Now.Add(5 * time.Minute))
	s.createReminder(Now.Add(15 * time.Minute))

	due, err := s.repo.SelectDue(context.Background(), reminder.SelectDueInput{
		Now:       Now,
		Lookahead: 10 * time.Minute,
	})

	s.Require().NoError(err)
	s.Require().Len(due, 1)
	s.Equal(within.ID, due[0].ID)
}

func (s *testSuite) TestSelectDueOrder() {
	third := s.createReminder(Now.Add(9 * time.Minute))
	first := s.createReminder(Now.Add(1 * time.Minute))
	second := s.createReminder(Now.Add(5 * time.Minute))

	due, err := s.repo.SelectDue(context.Background(), reminder.SelectDueInput{
		Now:       Now,
		Lookahead: 10 * time.Minute,
	})

	s.Require().NoError(err)
	s.Require().Len(due, 3)
	s.Equal(first.ID, due[0].ID)
	s.Equal(second.ID, due[1].ID)
	s.Equal(third.ID, due[2].ID)
}

func (s *testSuite) TestSelectDueSkipsSent() {
	rem := s.createReminder(Now.Add(5 * time.Minute))
	s.Require().NoError(s.repo.MarkSent(context.Background(), rem.ID, Now))

	due, err := s.repo.SelectDue(context.Background(), reminder.SelectDueInput{
		Now:       Now,
		Lookahead: 10 * time.Minute,
	})

	s.Require().NoError(err)
	s.Empty(due)
}

func (s *testSuite) TestSelectDueSkipsTaskAlreadyDue() {
	overdueTask, err := s.taskRepo.Create(context.Background(), task.CreateInput{
		Title:      "Already due",
		DueDate:    Now.Add(-time.Hour),
		CategoryID: s.category.ID,
		CreatedAt:  Now,
	})
	s.Require().NoError(err)
	_, err = s.repo.Create(context.Background(), reminder.CreateInput{
		TaskID:    overdueTask.ID,
		Method:    reminder.MethodEmail,
		At:        Now.Add(5 * time.Minute),
		CreatedAt: Now,
	})
	s.Require().NoError(err)

	due, err := s.repo.SelectDue(context.Background(), reminder.SelectDueInput{
		Now:       Now,
		Lookahead: 10 * time.Minute,
	})

	s.Require().NoError(err)
	s.Empty(due)
}

func (s *testSuite) TestMarkSent() {
	rem := s.createReminder(At)
	sentAt := Now.Add(time.Minute)

	err := s.repo.MarkSent(context.Background(), rem.ID, sentAt)
	s.Require().NoError(err)

	got, err := s.repo.GetByID(context.Background(), rem.ID)
	s.Require().NoError(err)
	s.True(got.IsSent())
	s.True(sentAt.Equal(got.SentAt.Value))
}

func (s *testSuite) TestMarkSentTwice() {
	rem := s.createReminder(At)

	s.Require().NoError(s.repo.MarkSent(context.Background(), rem.ID, Now))
	err := s.repo.MarkSent(context.Background(), rem.ID, Now.Add(time.Minute))

	s.ErrorIs(err, reminder.ErrReminderAlreadySent)
}

func (s *testSuite) TestMarkSentUnknownID() {
	err := s.repo.MarkSent(context.Background(), reminder.ID(12345), Now)
	s.ErrorIs(err, reminder.ErrReminderDoesNotExist)
}

func (s *testSuite) TestDeleteCascadesFromTask() {
	rem := s.createReminder(At)

	s.Require().NoError(s.taskRepo.Delete(context.Background(), s.task.ID))

	_, err := s.repo.GetByID(context.Background(), rem.ID)
	s.ErrorIs(err, reminder.ErrReminderDoesNotExist)
}

func (s *testSuite) createReminder(at time.Time) reminder.Reminder {
	s.T().Helper()
	rem, err := s.repo.Create(context.Background(), reminder.CreateInput{
		TaskID:    s.task.ID,
		Method:    reminder.MethodEmail,
		At:        at,
		CreatedAt: Now,
	})
	s.Require().NoError(err)
	return rem
}
