// Package sqlite implements the storage facade on a single-file SQLite
// database using the pure-Go modernc driver. The schema is bootstrapped
// with goose migrations at open time. Every write wraps its existence
// check and mutation in one transaction, and the duplicate check precedes
// the insert so callers see ErrDuplicateUser rather than a raw UNIQUE
// constraint violation; the constraint stays as a second line of defense.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"uservault/internal/dbx"
	"uservault/internal/models"
	"uservault/internal/storage"
	"uservault/internal/storage/sqlite/migrations"
)

// InMemoryDSN opens an ephemeral database that lives until Close.
const InMemoryDSN = ":memory:"

// Storage wraps an open SQLite database.
type Storage struct {
	db *sql.DB
}

// Open opens the database at dsn (a file path or InMemoryDSN) and applies
// pending schema migrations. Failures map to ErrConnectionFailed.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrConnectionFailed, err)
	}

	// A single connection keeps the :memory: database alive and serializes
	// writers, which SQLite requires anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", storage.ErrConnectionFailed, err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", storage.ErrConnectionFailed, err)
	}

	return &Storage{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *Storage) SaveUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		exists, err := emailExists(ctx, tx, user.Email, "")
		if err != nil {
			return err
		}
		if exists {
			return storage.ErrDuplicateUser
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO users (id, email, username, password, created_at) VALUES (?, ?, ?, ?, ?)`,
			user.ID, user.Email, user.Username, user.Password, formatTime(user.CreatedAt))
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSaveFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, `SELECT id, email, username, password, created_at FROM users WHERE email = ?`, email)
}

func (s *Storage) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, `SELECT id, email, username, password, created_at FROM users WHERE id = ?`, id)
}

func (s *Storage) findOne(ctx context.Context, query string, arg string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, query, arg)

	u, err := scanUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrQueryFailed, err)
	}
	return u, nil
}

func (s *Storage) GetAllUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, username, password, created_at FROM users`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrQueryFailed, err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrQueryFailed, err)
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrQueryFailed, err)
	}
	return result, nil
}

func (s *Storage) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	var updated models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var createdAt string
		err := tx.QueryRowContext(ctx,
			`SELECT created_at FROM users WHERE id = ?`, user.ID).Scan(&createdAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrUserNotFound
			}
			return fmt.Errorf("%w: %w", storage.ErrQueryFailed, err)
		}

		exists, err := emailExists(ctx, tx, user.Email, user.ID)
		if err != nil {
			return err
		}
		if exists {
			return storage.ErrDuplicateUser
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE users SET username = ?, email = ?, password = ? WHERE id = ?`,
			user.Username, user.Email, user.Password, user.ID)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrSaveFailed, err)
		}

		ts, err := parseTime(createdAt)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrQueryFailed, err)
		}
		updated = models.User{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Password:  user.Password,
			CreatedAt: ts,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id string) (bool, error) {
	existed := false

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrDeleteFailed, err)
		}
		ra, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrDeleteFailed, err)
		}
		existed = ra > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return existed, nil
}

func (s *Storage) UserExists(ctx context.Context, email string) (bool, error) {
	return emailExists(ctx, s.db, email, "")
}

func (s *Storage) Stats(ctx context.Context) (storage.Stats, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrQueryFailed, err)
	}

	return storage.Stats{
		storage.StatUserCount:   count,
		storage.StatBackendType: string(storage.BackendRelational),
	}, nil
}

// Close closes the underlying pool. database/sql makes repeated calls safe.
func (s *Storage) Close() error {
	return s.db.Close()
}

// emailExists reports whether a record other than excludeID holds the
// exact email. SQLite's default BINARY collation keeps the comparison
// case-sensitive.
func emailExists(ctx context.Context, q dbx.DBTX, email, excludeID string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE email = ? AND id <> ? LIMIT 1`, email, excludeID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", storage.ErrQueryFailed, err)
	}
	return true, nil
}

func scanUser(scan func(dest ...any) error) (*models.User, error) {
	var u models.User
	var createdAt string

	if err := scan(&u.ID, &u.Email, &u.Username, &u.Password, &createdAt); err != nil {
		return nil, err
	}

	ts, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = ts
	return &u, nil
}

// Timestamps are stored as RFC 3339 text so they round-trip without loss.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
