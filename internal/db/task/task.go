package task

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"

	"taskminder/internal/core/domain/category"
	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/task"
	"taskminder/internal/core/domain/user"
	"taskminder/internal/db"
)

type PgxTaskRepository struct {
	db db.Queryable
}

func NewPgxRepository(db db.Queryable) *PgxTaskRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxTaskRepository{db: db}
}

func (r *PgxTaskRepository) Create(ctx context.Context, input task.CreateInput) (t task.Task, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO task (title, description, due_date, category_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, title, description, due_date, category_id, created_at`,
		input.Title,
		input.Description,
		input.DueDate,
		int64(input.CategoryID),
		input.CreatedAt,
	)
	return scanTask(row)
}

func (r *PgxTaskRepository) GetByID(ctx context.Context, id task.ID) (t task.Task, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, title, description, due_date, category_id, created_at FROM task WHERE id = $1`,
		int64(id),
	)
	t, err = scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, task.ErrTaskDoesNotExist
	}
	return t, err
}

func (r *PgxTaskRepository) ReadByCategory(ctx context.Context, categoryID category.ID) ([]task.Task, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, title, description, due_date, category_id, created_at
		 FROM task
		 WHERE category_id = $1
		 ORDER BY id`,
		int64(categoryID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *PgxTaskRepository) ReadUpcoming(ctx context.Context, userID user.ID, dueAfter time.Time) ([]task.Task, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT t.id, t.title, t.description, t.due_date, t.category_id, t.created_at
		 FROM task AS t
		 JOIN category AS c ON c.id = t.category_id
		 WHERE c.created_by = $1 AND t.due_date >= $2
		 ORDER BY t.due_date, t.id`,
		int64(userID),
		dueAfter,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *PgxTaskRepository) Delete(ctx context.Context, id task.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM task WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskDoesNotExist
	}
	return nil
}

func scanTasks(rows pgx.Rows) ([]task.Task, error) {
	tasks := make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(row pgx.Row) (t task.Task, err error) {
	var (
		id         int64
		categoryID int64
	)
	err = row.Scan(&id, &t.Title, &t.Description, &t.DueDate, &categoryID, &t.CreatedAt)
	if err != nil {
		return t, err
	}
	t.ID = task.ID(id)
	t.CategoryID = category.ID(categoryID)
	return t, nil
}
