package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/langkah-ekspor/exporo/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	phone         TEXT,
	password_hash TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

-- Profiles are not foreign-keyed to users: anonymous chat sessions save
-- under their own ids.
CREATE TABLE IF NOT EXISTS profiles (
	user_id    TEXT PRIMARY KEY,
	profile    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateUser(ctx context.Context, reg UserRegistration) (*model.User, error) {
	hash, err := hashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, email, phone, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, reg.FirstName, reg.LastName, reg.Email, reg.Phone, hash, now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrEmailExists
		}
		return nil, eris.Wrap(err, "sqlite: insert user")
	}

	return &model.User{
		ID:        id,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
		Phone:     reg.Phone,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteStore) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, phone, password_hash, created_at FROM users WHERE email = ?`,
		email,
	)

	user, hash, err := scanUser(row)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !verifyPassword(hash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, phone, password_hash, created_at FROM users WHERE email = ?`,
		email,
	)
	user, _, err := scanUser(row)
	return user, err
}

func (s *SQLiteStore) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count users")
}

func (s *SQLiteStore) SaveProfile(ctx context.Context, userID string, p *model.BusinessProfile) error {
	blob, err := json.Marshal(p)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal profile")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, profile, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET profile = excluded.profile, updated_at = excluded.updated_at`,
		userID, string(blob), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: upsert profile %s", userID)
}

func (s *SQLiteStore) LoadProfile(ctx context.Context, userID string) (*model.BusinessProfile, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile FROM profiles WHERE user_id = ?`, userID,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return model.NewDefaultProfile(), nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: load profile %s", userID)
	}

	var p model.BusinessProfile
	if err := json.Unmarshal([]byte(blob), &p); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal profile %s", userID)
	}
	return &p, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanUser(row scannable) (*model.User, string, error) {
	var u model.User
	var phone sql.NullString
	var hash string

	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &phone, &hash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, "", ErrUserNotFound
	}
	if err != nil {
		return nil, "", eris.Wrap(err, "scan user")
	}
	u.Phone = phone.String
	return &u, hash, nil
}
