package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/orderdesk/internal/apperror"
	"github.com/sakif/orderdesk/internal/model"
	"github.com/sakif/orderdesk/internal/repository"
)

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// UserDB serves the users contract from a shared *DB. Users and orders get
// separate wrapper types because both contracts name their methods List,
// Create, Update and Delete.
type UserDB struct {
	db *DB
}

// NewUserDB returns the users view of the database.
func NewUserDB(db *DB) *UserDB {
	return &UserDB{db: db}
}

// List returns every user.
func (u *UserDB) List(ctx context.Context) ([]model.User, error) {
	rows, err := u.db.conn.QueryContext(ctx, `SELECT id, name FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user rows: %w", err)
	}
	return users, nil
}

// Create inserts a new user under the next free id (max + 1, or 0 when the
// table is empty) and returns the stored record.
func (u *UserDB) Create(ctx context.Context, draft model.NewUser) (model.User, error) {
	var next int64
	// COALESCE turns the NULL from an empty table into -1, so max+1 is 0.
	err := u.db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id), -1) + 1 FROM users`).Scan(&next)
	if err != nil {
		return model.User{}, fmt.Errorf("sqlite: picking next user id: %w", err)
	}

	_, err = u.db.conn.ExecContext(ctx,
		`INSERT INTO users (id, name) VALUES (?, ?)`, next, draft.Name)
	if err != nil {
		return model.User{}, fmt.Errorf("sqlite: inserting user: %w", err)
	}

	return model.User{ID: next, Name: draft.Name}, nil
}

// Update patches the stored user's fields; the id must already exist.
func (u *UserDB) Update(ctx context.Context, user model.User) (model.User, error) {
	res, err := u.db.conn.ExecContext(ctx,
		`UPDATE users SET name = ? WHERE id = ?`, user.Name, user.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("sqlite: updating user %d: %w", user.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return model.User{}, fmt.Errorf("sqlite: checking update result: %w", err)
	}
	if affected == 0 {
		return model.User{}, apperror.NotFound("user", user.ID)
	}

	return user, nil
}

// Delete removes the user if present; absent ids succeed.
func (u *UserDB) Delete(ctx context.Context, id int64) (int64, error) {
	if _, err := u.db.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return 0, fmt.Errorf("sqlite: deleting user %d: %w", id, err)
	}
	return id, nil
}

// Details composes the detail blurb from the stored row, so unlike the
// simulated backend it reports NotFound for users that don't exist.
func (u *UserDB) Details(ctx context.Context, id int64) (string, error) {
	var stored int64
	err := u.db.conn.QueryRowContext(ctx, `SELECT id FROM users WHERE id = ?`, id).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperror.NotFound("user", id)
	}
	if err != nil {
		return "", fmt.Errorf("sqlite: looking up user %d: %w", id, err)
	}
	return fmt.Sprintf("Details for user with id %d", stored), nil
}

// Seed inserts the given users unless the table already has rows.
func (u *UserDB) Seed(users []model.User) error {
	n, err := u.db.seedCount("users")
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, user := range users {
		if _, err := u.db.conn.Exec(
			`INSERT INTO users (id, name) VALUES (?, ?)`, user.ID, user.Name); err != nil {
			return fmt.Errorf("seeding user %d: %w", user.ID, err)
		}
	}
	return nil
}
