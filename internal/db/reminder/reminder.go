package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	c "taskminder/internal/core/domain/common"
	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/reminder"
	"taskminder/internal/core/domain/task"
	"taskminder/internal/db"
)

type PgxReminderRepository struct {
	db db.Queryable
}

func NewPgxRepository(db db.Queryable) *PgxReminderRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxReminderRepository{db: db}
}

func (r *PgxReminderRepository) Create(ctx context.Context, input reminder.CreateInput) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO reminder (task_id, method, reminder_at, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, task_id, method, reminder_at, created_at, sent_at`,
		int64(input.TaskID),
		input.Method.String(),
		input.At,
		input.CreatedAt,
	)
	return scanReminder(row)
}

func (r *PgxReminderRepository) GetByID(ctx context.Context, id reminder.ID) (rem reminder.Reminder, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, task_id, method, reminder_at, created_at, sent_at FROM reminder WHERE id = $1`,
		int64(id),
	)
	rem, err = scanReminder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rem, reminder.ErrReminderDoesNotExist
	}
	return rem, err
}

func (r *PgxReminderRepository) ReadByTask(ctx context.Context, taskID task.ID) ([]reminder.Reminder, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, task_id, method, reminder_at, created_at, sent_at
		 FROM reminder
		 WHERE task_id = $1
		 ORDER BY id`,
		int64(taskID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReminders(rows)
}

// SelectDue selects unsent reminders whose fire time falls inside the
// lookahead window and whose task is not yet due before the fire time.
func (r *PgxReminderRepository) SelectDue(ctx context.Context, input reminder.SelectDueInput) ([]reminder.Reminder, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT r.id, r.task_id, r.method, r.reminder_at, r.created_at, r.sent_at
		 FROM reminder AS r
		 JOIN task AS t ON t.id = r.task_id
		 WHERE r.sent_at IS NULL
		   AND r.reminder_at <= $1
		   AND t.due_date >= r.reminder_at
		 ORDER BY r.reminder_at, r.id`,
		input.Now.Add(input.Lookahead),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReminders(rows)
}

// MarkSent transitions the reminder to sent only if it is still unsent.
// The condition on sent_at makes the write race-free, concurrent
// callers get ErrReminderAlreadySent.
func (r *PgxReminderRepository) MarkSent(ctx context.Context, id reminder.ID, sentAt time.Time) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE reminder SET sent_at = $2 WHERE id = $1 AND sent_at IS NULL`,
		int64(id),
		sentAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	err = r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM reminder WHERE id = $1)`,
		int64(id),
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return reminder.ErrReminderAlreadySent
	}
	return reminder.ErrReminderDoesNotExist
}

func (r *PgxReminderRepository) Delete(ctx context.Context, id reminder.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reminder WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return reminder.ErrReminderDoesNotExist
	}
	return nil
}

func scanReminders(rows pgx.Rows) ([]reminder.Reminder, error) {
	reminders := make([]reminder.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func scanReminder(row pgx.Row) (rem reminder.Reminder, err error) {
	var (
		id     int64
		taskID int64
		method string
		sentAt pgtype.Timestamptz
	)
	err = row.Scan(&id, &taskID, &method, &rem.At, &rem.CreatedAt, &sentAt)
	if err != nil {
		return rem, err
	}
	rem.ID = reminder.ID(id)
	rem.TaskID = task.ID(taskID)
	rem.Method, err = reminder.ParseNotificationMethod(method)
	if err != nil {
		return rem, err
	}
	rem.SentAt = decodeSentAt(sentAt)
	return rem, nil
}

func decodeSentAt(sentAt pgtype.Timestamptz) c.Optional[time.Time] {
	return c.NewOptional(sentAt.Time, sentAt.Status == pgtype.Present)
}
