package repository

import (
	"context"
	"errors"
	"fmt"

	"UserAuthAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUserNotFound   = errors.New("user not found")
)

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepository struct {
	DB DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts a new user and returns the assigned id.
// The unique index on email is the real duplicate guard; a violation
// surfaces as ErrDuplicateEmail even when a prior existence check passed.
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) (int64, error) {
	var id int64
	query := `INSERT INTO users (first_name, last_name, gender, date_of_birth, phone, email, password_hash)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`
	err := r.DB.QueryRow(ctx, query,
		u.FirstName, u.LastName, u.Gender, u.DateOfBirth, u.Phone, u.Email, u.PasswordHash,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := `SELECT id, first_name, last_name, gender, date_of_birth, phone, email, password_hash, created_at
			FROM users
			WHERE email=$1`
	err := r.DB.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Gender, &u.DateOfBirth,
		&u.Phone, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}
