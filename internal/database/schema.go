package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is applied statement by statement at startup. Every statement is
// idempotent so restarts are safe.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id            BIGINT AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		is_superadmin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS club_admins (
		account_id BIGINT PRIMARY KEY,
		club_id    VARCHAR(64) NOT NULL,
		CONSTRAINT fk_club_admins_account FOREIGN KEY (account_id)
			REFERENCES accounts (id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS club_content (
		id         BIGINT AUTO_INCREMENT PRIMARY KEY,
		club_id    VARCHAR(64) NOT NULL,
		kind       VARCHAR(16) NOT NULL,
		title      VARCHAR(255) NOT NULL,
		body       TEXT NOT NULL,
		file_key   VARCHAR(512) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_club_content_club_kind (club_id, kind)
	)`,
}

// EnsureSchema creates the tables the server needs when they are missing
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("[database EnsureSchema] statement %d: %w", i, err)
		}
	}
	return nil
}
