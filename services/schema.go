package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements are applied in order at startup. Everything is
// IF NOT EXISTS so restarting against an existing database is a no-op;
// destructive migrations are run by hand.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		clerk_id TEXT UNIQUE NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		username TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		email_verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS journal_entries (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		mood TEXT NOT NULL,
		craving_level INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_entries_user_created
		ON journal_entries (user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type TEXT NOT NULL,
		priority TEXT NOT NULL DEFAULT 'normal',
		status TEXT NOT NULL DEFAULT 'pending',
		title TEXT NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		data JSONB NOT NULL DEFAULT '{}',
		actor_id TEXT,
		scheduled_for TIMESTAMPTZ,
		sent_at TIMESTAMPTZ,
		read_at TIMESTAMPTZ,
		failed_at TIMESTAMPTZ,
		failure_reason TEXT,
		retry_count INTEGER NOT NULL DEFAULT 0,
		action_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_created
		ON notifications (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_due
		ON notifications (status, scheduled_for)
		WHERE status = 'pending'`,

	`CREATE TABLE IF NOT EXISTS notification_preferences (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id TEXT UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		push_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		email_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		in_app_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		enabled_types JSONB NOT NULL DEFAULT '{}',
		quiet_hours_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		quiet_hours_start TEXT,
		quiet_hours_end TEXT,
		quiet_hours_timezone TEXT,
		max_notifications_per_hour INTEGER NOT NULL DEFAULT 5,
		max_notifications_per_day INTEGER NOT NULL DEFAULT 20,
		device_tokens JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS notification_rate_limits (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		window_start TIMESTAMPTZ NOT NULL,
		window_end TIMESTAMPTZ NOT NULL,
		notification_count INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (user_id, window_start)
	)`,
}

// EnsureSchema creates the application tables on a fresh database.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
