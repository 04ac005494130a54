package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskminder/internal/core/domain/category"
	"taskminder/internal/core/domain/task"
	"taskminder/internal/core/domain/user"
)

var Now = time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

func TestMinutesUntil(t *testing.T) {
	cases := []struct {
		id       string
		at       time.Time
		expected int
	}{
		{id: "exactly now", at: Now, expected: 0},
		{id: "in 5 minutes", at: Now.Add(5 * time.Minute), expected: 5},
		{id: "in 59 seconds", at: Now.Add(59 * time.Second), expected: 0},
		{id: "in 61 seconds", at: Now.Add(61 * time.Second), expected: 1},
		{id: "1 second ago", at: Now.Add(-time.Second), expected: -1},
		{id: "1 minute ago", at: Now.Add(-time.Minute), expected: -1},
		{id: "90 seconds ago", at: Now.Add(-90 * time.Second), expected: -2},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			assert.Equal(t, testcase.expected, MinutesUntil(Now, testcase.at))
		})
	}
}

func TestParseNotificationMethod(t *testing.T) {
	cases := []struct {
		raw      string
		expected NotificationMethod
		isValid  bool
	}{
		{raw: "email", expected: MethodEmail, isValid: true},
		{raw: "internal", expected: MethodInternal, isValid: true},
		{raw: "push", expected: MethodPush, isValid: true},
		{raw: "", expected: MethodUnknown, isValid: false},
		{raw: "sms", expected: MethodUnknown, isValid: false},
	}
	for _, testcase := range cases {
		t.Run(testcase.raw, func(t *testing.T) {
			method, err := ParseNotificationMethod(testcase.raw)
			if testcase.isValid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrParseNotificationMethod)
			}
			assert.Equal(t, testcase.expected, method)
		})
	}
}

func setupRepository(t *testing.T) (*TestReminderRepository, task.Task) {
	t.Helper()
	users := user.NewTestUserRepository()
	u, err := users.Create(context.Background(), user.CreateUserInput{
		Email: "owner@test.test", PasswordHash: "x", CreatedAt: Now,
	})
	require.NoError(t, err)

	categories := category.NewTestCategoryRepository()
	cat, err := categories.Create(context.Background(), category.CreateInput{
		Name: "Healthcare", Type: "appointments", CreatedBy: u.ID, CreatedAt: Now,
	})
	require.NoError(t, err)

	tasks := task.NewTestTaskRepository(categories)
	tsk, err := tasks.Create(context.Background(), task.CreateInput{
		Title:      "Dentist",
		DueDate:    Now.Add(24 * time.Hour),
		CategoryID: cat.ID,
		CreatedAt:  Now,
	})
	require.NoError(t, err)

	return NewTestReminderRepository(tasks), tsk
}

func TestMarkSentIsAtMostOnce(t *testing.T) {
	repo, tsk := setupRepository(t)
	rem, err := repo.Create(context.Background(), CreateInput{
		TaskID: tsk.ID, Method: MethodEmail, At: Now, CreatedAt: Now,
	})
	require.NoError(t, err)

	const writers = 16
	results := make([]error, writers)
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		i := i
		go func() {
			defer wg.Done()
			results[i] = repo.MarkSent(context.Background(), rem.ID, Now)
		}()
	}
	wg.Wait()

	succeeded := 0
	alreadySent := 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case err == ErrReminderAlreadySent:
			alreadySent++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, writers-1, alreadySent)

	stored, err := repo.GetByID(context.Background(), rem.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsSent())
}

func TestMarkSentMissingReminder(t *testing.T) {
	repo, _ := setupRepository(t)
	err := repo.MarkSent(context.Background(), ID(123), Now)
	assert.ErrorIs(t, err, ErrReminderDoesNotExist)
}
