// Package repository provides database access layer.
//
// The backing store is Oracle 11g, reached through database/sql with the
// go-ora driver wrapped by the dialect adapter in internal/oracle, so
// statements written with FETCH FIRST run unchanged on 11g.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	go_ora "github.com/sijms/go-ora/v2"

	"github.com/umeshgupta05/SmartPathAI/internal/oracle"
)

// DriverName is the database/sql driver this package registers.
const DriverName = "oracle11g"

func init() {
	sql.Register(DriverName, oracle.NewDriver(&go_ora.OracleDriver{}))
}

// Repository provides database access methods.
type Repository struct {
	db *sql.DB
}

// New creates a new Repository with a connection pool.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	db, err := sql.Open(DriverName, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection pool.
func (r *Repository) Close() error {
	return r.db.Close()
}

// DB returns the underlying database handle.
// Use sparingly - prefer adding methods to Repository.
func (r *Repository) DB() *sql.DB {
	return r.db
}

// isUniqueViolation reports whether an error is Oracle's unique constraint
// violation (ORA-00001). go-ora surfaces server errors as strings, so the
// code is matched textually.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "ORA-00001")
}
