package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver" // database/sql driver
	_ "github.com/ncruces/go-sqlite3/embed"  // bundled WASM build

	"github.com/bnema/ember/internal/logging"
)

// pragmas are applied by the driver on every new connection. secure_delete
// overwrites burned rows instead of leaving them in free pages.
var pragmas = []string{
	"busy_timeout(5000)",
	"secure_delete(on)",
	"journal_mode(wal)",
	"synchronous(normal)",
	"temp_store(memory)",
	"foreign_keys(on)",
}

// dsn builds a file: URI carrying pragmas for the ncruces driver.
func dsn(dbPath string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	return "file:" + filepath.ToSlash(dbPath) + "?" + q.Encode()
}

// NewConnection opens the burnable-store database at dbPath and migrates it
// to the latest schema. The parent directory is created when missing.
func NewConnection(ctx context.Context, dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Concurrent burn steps share one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logging.FromContext(ctx).Debug().Str("path", dbPath).Msg("database ready")
	return db, nil
}
