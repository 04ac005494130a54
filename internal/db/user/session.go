package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	c "taskminder/internal/core/domain/common"
	e "taskminder/internal/core/domain/errors"
	"taskminder/internal/core/domain/user"
	"taskminder/internal/db"
)

type PgxSessionRepository struct {
	db db.Queryable
}

func NewPgxSessionRepository(db db.Queryable) *PgxSessionRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxSessionRepository{db: db}
}

func (r *PgxSessionRepository) Create(ctx context.Context, input user.CreateSessionInput) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO session (token, user_id, created_at) VALUES ($1, $2, $3)`,
		string(input.Token),
		int64(input.UserID),
		input.CreatedAt,
	)
	return err
}

func (r *PgxSessionRepository) GetUserByToken(ctx context.Context, token user.SessionToken) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT u.id, u.email, u.password_hash, u.created_at
		 FROM "user" AS u
		 JOIN session AS s ON s.user_id = u.id
		 WHERE s.token = $1`,
		string(token),
	)
	var (
		id           int64
		email        string
		passwordHash string
	)
	err = row.Scan(&id, &email, &passwordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	u.ID = user.ID(id)
	u.Email = c.Email(email)
	u.PasswordHash = user.PasswordHash(passwordHash)
	return u, nil
}

func (r *PgxSessionRepository) Delete(ctx context.Context, token user.SessionToken) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM session WHERE token = $1`, string(token))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrSessionDoesNotExist
	}
	return nil
}
