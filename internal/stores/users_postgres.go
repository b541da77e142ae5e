package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JinhyeokFang/capstone/user"
)

// PostgresUserStore persists users in the `users` table.
type PostgresUserStore struct {
	db *sql.DB
}

// NewPostgresUserStore wraps an open database handle. Migrations are the
// caller's responsibility (see the migrations package).
func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

const userColumns = "id, name, email, password, created_at, updated_at, last_login_at, is_active"

// FindByEmail returns user.ErrNotFound when no account has this email.
func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email)
	return scanUser(row)
}

// FindByID returns user.ErrNotFound when the id is unknown.
func (s *PostgresUserStore) FindByID(ctx context.Context, id int64) (*user.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}

// Create inserts a new account and returns it with the generated id.
func (s *PostgresUserStore) Create(ctx context.Context, u *user.User) (*user.User, error) {
	stored := *u
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password, created_at, updated_at, last_login_at, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		u.Name, u.Email, nullString(u.PasswordHash), u.CreatedAt, u.UpdatedAt, nullTime(u.LastLoginAt), u.IsActive,
	).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &stored, nil
}

// Save updates an existing account in place and returns the stored state.
func (s *PostgresUserStore) Save(ctx context.Context, u *user.User) (*user.User, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users
		 SET name = $2, email = $3, password = $4, updated_at = $5, last_login_at = $6, is_active = $7
		 WHERE id = $1`,
		u.ID, u.Name, u.Email, nullString(u.PasswordHash), u.UpdatedAt, nullTime(u.LastLoginAt), u.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return nil, user.ErrNotFound
	}
	stored := *u
	return &stored, nil
}

func scanUser(row *sql.Row) (*user.User, error) {
	var (
		u         user.User
		password  sql.NullString
		lastLogin sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &password, &u.CreatedAt, &u.UpdatedAt, &lastLogin, &u.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if password.Valid {
		u.PasswordHash = password.String
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginAt = &t
	}
	return &u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
