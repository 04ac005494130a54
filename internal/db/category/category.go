package category

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"taskminder/internal/core/domain/category"
	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/user"
	"taskminder/internal/db"
)

type PgxCategoryRepository struct {
	db db.Queryable
}

func NewPgxRepository(db db.Queryable) *PgxCategoryRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxCategoryRepository{db: db}
}

func (r *PgxCategoryRepository) Create(ctx context.Context, input category.CreateInput) (cat category.Category, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO category (name, type, created_by, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, type, created_by, created_at`,
		input.Name,
		input.Type,
		int64(input.CreatedBy),
		input.CreatedAt,
	)
	return scanCategory(row)
}

func (r *PgxCategoryRepository) GetByID(ctx context.Context, id category.ID) (cat category.Category, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, name, type, created_by, created_at FROM category WHERE id = $1`,
		int64(id),
	)
	cat, err = scanCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return cat, category.ErrCategoryDoesNotExist
	}
	return cat, err
}

func (r *PgxCategoryRepository) ReadByUser(ctx context.Context, userID user.ID) ([]category.Category, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, type, created_by, created_at
		 FROM category
		 WHERE created_by = $1
		 ORDER BY id`,
		int64(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]category.Category, 0)
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *PgxCategoryRepository) Delete(ctx context.Context, id category.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM category WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryDoesNotExist
	}
	return nil
}

func scanCategory(row pgx.Row) (cat category.Category, err error) {
	var (
		id        int64
		createdBy int64
	)
	err = row.Scan(&id, &cat.Name, &cat.Type, &createdBy, &cat.CreatedAt)
	if err != nil {
		return cat, err
	}
	cat.ID = category.ID(id)
	cat.CreatedBy = user.ID(createdBy)
	return cat, nil
}
