// Package database opens the sqlx MySQL pool shared by every store.
//
// The pool is the only shared mutable resource in the server. It is created
// once in main, handed to the repos, and closed on shutdown.
package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Open returns a pinged *sqlx.DB capped at poolSize open connections
func Open(ctx context.Context, dsn string, poolSize int) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("[database Open] %w", err)
	}

	db.SetMaxOpenConns(poolSize)
	db.SetMaxIdleConns(poolSize)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("[database Open] ping: %w", err)
	}
	return db, nil
}
