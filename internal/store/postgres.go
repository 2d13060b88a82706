package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/langkah-ekspor/exporo/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool, used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	phone         TEXT,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS profiles (
	user_id    TEXT PRIMARY KEY,
	profile    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, reg UserRegistration) (*model.User, error) {
	hash, err := hashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	_, err = s.pool.Exec(ctx,
		`INSERT INTO users (id, first_name, last_name, email, phone, password_hash, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, reg.FirstName, reg.LastName, reg.Email, reg.Phone, hash, now,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailExists
		}
		return nil, eris.Wrap(err, "postgres: insert user")
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

func (s *PostgresStore) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, hash, err := s.userByEmail(ctx, email)
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

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, _, err := s.userByEmail(ctx, email)
	return user, err
}

func (s *PostgresStore) userByEmail(ctx context.Context, email string) (*model.User, string, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, phone, password_hash, created_at FROM users WHERE email = $1`,
		email,
	)

	var u model.User
	var phone *string
	var hash string
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &phone, &hash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrUserNotFound
	}
	if err != nil {
		return nil, "", eris.Wrap(err, "postgres: scan user")
	}
	if phone != nil {
		u.Phone = *phone
	}
	return &u, hash, nil
}

func (s *PostgresStore) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, eris.Wrap(err, "postgres: count users")
}

func (s *PostgresStore) SaveProfile(ctx context.Context, userID string, p *model.BusinessProfile) error {
	blob, err := json.Marshal(p)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal profile")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, profile, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET profile = EXCLUDED.profile, updated_at = EXCLUDED.updated_at`,
		userID, blob, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: upsert profile %s", userID)
}

func (s *PostgresStore) LoadProfile(ctx context.Context, userID string) (*model.BusinessProfile, error) {
	var blob []byte
	err := s.pool.QueryRow(ctx,
		`SELECT profile FROM profiles WHERE user_id = $1`, userID,
	).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.NewDefaultProfile(), nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: load profile %s", userID)
	}

	var p model.BusinessProfile
	if err := json.Unmarshal(blob, &p); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal profile %s", userID)
	}
	return &p, nil
}
