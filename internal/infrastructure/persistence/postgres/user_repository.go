package postgres

import (
	"context"
	"errors"
	"fmt"

	"aspiro/internal/database"
	"aspiro/internal/domain/user"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const (
	queryUserByEmail = `SELECT id, email, full_name, hashed_password, is_active FROM users WHERE email = $1`
	queryInsertUser  = `INSERT INTO users (email, full_name, hashed_password, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, email, full_name, hashed_password, is_active`
)

type UserRepository struct {
	db database.DB
}

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, queryUserByEmail, email))
}

// CreateIfAbsent runs the lookup and the insert in one transaction. The
// unique constraint on email still decides races between concurrent callers.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, u user.NewUser) (created user.User, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return user.User{}, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	_, err = scanUser(tx.QueryRow(ctx, queryUserByEmail, u.Email))
	switch {
	case err == nil:
		return user.User{}, user.ErrDuplicateEmail
	case !errors.Is(err, user.ErrNotFound):
		return user.User{}, err
	}

	created, err = scanUser(tx.QueryRow(ctx, queryInsertUser, u.Email, u.FullName, u.HashedPassword))
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrDuplicateEmail
		}
		return user.User{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return user.User{}, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.HashedPassword, &u.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var _ user.Repository = (*UserRepository)(nil)
