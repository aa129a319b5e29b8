package records

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps records in a single user_records table keyed by
// (clerk_id, record_key).
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the user_records table if it doesn't exist. Called
// once at startup.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS user_records (
			clerk_id TEXT NOT NULL,
			record_key TEXT NOT NULL,
			record_value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (clerk_id, record_key)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create user_records table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, clerkID, key string) (string, error) {
	var value string
	err := s.db.QueryRow(ctx,
		`SELECT record_value FROM user_records WHERE clerk_id = $1 AND record_key = $2`,
		clerkID, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get record %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, clerkID, key, value string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_records (clerk_id, record_key, record_value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (clerk_id, record_key)
		DO UPDATE SET record_value = $3, updated_at = NOW()`,
		clerkID, key, value)
	if err != nil {
		return fmt.Errorf("failed to set record %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, clerkID, key string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM user_records WHERE clerk_id = $1 AND record_key = $2`,
		clerkID, key)
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Keys(ctx context.Context, clerkID, prefix string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT record_key FROM user_records
		WHERE clerk_id = $1 AND record_key LIKE $2 || '%'
		ORDER BY record_key`,
		clerkID, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list record keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan record key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read record keys: %w", err)
	}
	return keys, nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context, clerkID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM user_records WHERE clerk_id = $1`, clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete records for user: %w", err)
	}
	return nil
}

func (s *PostgresStore) Users(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT DISTINCT clerk_id FROM user_records ORDER BY clerk_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list record owners: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var clerkID string
		if err := rows.Scan(&clerkID); err != nil {
			return nil, fmt.Errorf("failed to scan record owner: %w", err)
		}
		users = append(users, clerkID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read record owners: %w", err)
	}
	return users, nil
}
