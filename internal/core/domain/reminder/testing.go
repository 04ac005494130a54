package reminder

import (
	"context"
	"sort"
	"sync"
	c "taskminder/internal/core/domain/common"
	"taskminder/internal/core/domain/task"
	"time"
)

// TestReminderRepository is an in-memory repository reproducing the
// conditional-write semantics of MarkSent and the SelectDue predicate,
// joined against the given task repository.
type TestReminderRepository struct {
	Reminders      map[ID]Reminder
	Tasks          *task.TestTaskRepository
	CreateError    error
	SelectDueError error
	MarkSentError  error
	SelectDueWith  []SelectDueInput
	MarkSentWith   []ID
	nextID         ID
	lock           sync.Mutex
}

func NewTestReminderRepository(tasks *task.TestTaskRepository) *TestReminderRepository {
	return &TestReminderRepository{
		Reminders: make(map[ID]Reminder),
		Tasks:     tasks,
	}
}

func (r *TestReminderRepository) Create(ctx context.Context, input CreateInput) (rem Reminder, err error) {
	if r.CreateError != nil {
		return rem, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.nextID++
	rem = Reminder{
		ID:        r.nextID,
		TaskID:    input.TaskID,
		Method:    input.Method,
		At:        input.At,
		CreatedAt: input.CreatedAt,
	}
	r.Reminders[rem.ID] = rem
	return rem, nil
}

func (r *TestReminderRepository) GetByID(ctx context.Context, id ID) (rem Reminder, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	rem, ok := r.Reminders[id]
	if !ok {
		return rem, ErrReminderDoesNotExist
	}
	return rem, nil
}

func (r *TestReminderRepository) ReadByTask(ctx context.Context, taskID task.ID) ([]Reminder, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	reminders := make([]Reminder, 0)
	for _, rem := range r.Reminders {
		if rem.TaskID == taskID {
			reminders = append(reminders, rem)
		}
	}
	sort.Slice(reminders, func(i, j int) bool { return reminders[i].ID < reminders[j].ID })
	return reminders, nil
}

func (r *TestReminderRepository) SelectDue(ctx context.Context, input SelectDueInput) ([]Reminder, error) {
	if r.SelectDueError != nil {
		return nil, r.SelectDueError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.SelectDueWith = append(r.SelectDueWith, input)

	bound := input.Now.Add(input.Lookahead)
	due := make([]Reminder, 0)
	for _, rem := range r.Reminders {
		if rem.IsSent() || rem.At.After(bound) {
			continue
		}
		t, err := r.Tasks.GetByID(ctx, rem.TaskID)
		if err != nil {
			continue
		}
		if t.DueDate.Before(rem.At) {
			continue
		}
		due = append(due, rem)
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].At.Equal(due[j].At) {
			return due[i].ID < due[j].ID
		}
		return due[i].At.Before(due[j].At)
	})
	return due, nil
}

func (r *TestReminderRepository) MarkSent(ctx context.Context, id ID, sentAt time.Time) error {
	if r.MarkSentError != nil {
		return r.MarkSentError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.MarkSentWith = append(r.MarkSentWith, id)
	rem, ok := r.Reminders[id]
	if !ok {
		return ErrReminderDoesNotExist
	}
	if rem.IsSent() {
		return ErrReminderAlreadySent
	}
	rem.SentAt = c.NewOptional(sentAt, true)
	r.Reminders[id] = rem
	return nil
}

func (r *TestReminderRepository) Delete(ctx context.Context, id ID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.Reminders[id]; !ok {
		return ErrReminderDoesNotExist
	}
	delete(r.Reminders, id)
	return nil
}

// FakeDispatcher records dispatched reminders and fails the IDs listed
// in Errors.
type FakeDispatcher struct {
	Dispatched []Reminder
	Errors     map[ID]error
	lock       sync.Mutex
}

func NewFakeDispatcher() *FakeDispatcher {
	return &FakeDispatcher{Errors: make(map[ID]error)}
}

func (d *FakeDispatcher) Dispatch(ctx context.Context, rem Reminder) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if err, ok := d.Errors[rem.ID]; ok {
		return err
	}
	d.Dispatched = append(d.Dispatched, rem)
	return nil
}

func (d *FakeDispatcher) DispatchedIDs() []ID {
	d.lock.Lock()
	defer d.lock.Unlock()
	ids := make([]ID, 0, len(d.Dispatched))
	for _, rem := range d.Dispatched {
		ids = append(ids, rem.ID)
	}
	return ids
}

// FakeNotificationSender records sent notifications.
type FakeNotificationSender struct {
	Sent  []Notification
	Error error
	lock  sync.Mutex
}

func NewFakeNotificationSender() *FakeNotificationSender {
	return &FakeNotificationSender{}
}

func (s *FakeNotificationSender) SendNotification(ctx context.Context, notification Notification) error {
	if s.Error != nil {
		return s.Error
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, notification)
	return nil
}
