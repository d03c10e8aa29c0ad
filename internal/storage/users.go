package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// localPasswordHash marks accounts created for local play. It never matches
// a bcrypt hash, so such accounts cannot log in over the API.
const localPasswordHash = "!local"

// User is a registered player.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUser inserts a new account. It returns ErrDuplicate when the
// username or email is taken.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash string) (User, error) {
	var emailArg any
	if email != "" {
		emailArg = email
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)",
		username, emailArg, passwordHash,
	)
	if isUnique(err) {
		field := "username"
		if strings.Contains(err.Error(), "users.email") {
			field = "email"
		}
		return User{}, fmt.Errorf("%w %s", ErrDuplicate, field)
	}
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return s.UserByID(ctx, id)
}

const userColumns = "id, username, COALESCE(email, ''), password_hash, created_at"

func (s *Store) userWhere(ctx context.Context, where string, arg any) (User, error) {
	var u User
	var createdAt any
	err := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+where, arg,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot query user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return u, nil
}

// UserByID looks a user up by primary key.
func (s *Store) UserByID(ctx context.Context, id int64) (User, error) {
	return s.userWhere(ctx, "id = ?", id)
}

// UserByUsername looks a user up by username.
func (s *Store) UserByUsername(ctx context.Context, username string) (User, error) {
	return s.userWhere(ctx, "username = ?", username)
}

// UserByEmail looks a user up by email.
func (s *Store) UserByEmail(ctx context.Context, email string) (User, error) {
	return s.userWhere(ctx, "email = ?", email)
}

// EnsureLocalUser returns the named user, creating a local-only account if
// none exists.
func (s *Store) EnsureLocalUser(ctx context.Context, username string) (User, error) {
	u, err := s.UserByUsername(ctx, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	return s.CreateUser(ctx, username, "", localPasswordHash)
}

// CountUsers returns the number of accounts.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count users: %w", err)
	}
	return n, nil
}

// ListUsernames returns all usernames, newest account first.
func (s *Store) ListUsernames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT username FROM users ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list users: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return names, nil
}
