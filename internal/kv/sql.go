package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

const sqliteFileName = "todo.sqlite"

// Per-call timeout for SQL backends. Persistence is synchronous from the UI's point of view.
const sqlCallTimeout = 5 * time.Second

type dialect struct {
	driver string
	schema string
	upsert string
}

var (
	sqliteDialect = dialect{
		driver: "sqlite",
		schema: `CREATE TABLE IF NOT EXISTS kv (
                k TEXT PRIMARY KEY,
                v TEXT NOT NULL,
                updated_at_unixms INTEGER NOT NULL
        )`,
		upsert: `INSERT OR REPLACE INTO kv(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
	}
	mysqlDialect = dialect{
		driver: "mysql",
		schema: `CREATE TABLE IF NOT EXISTS kv (
                k VARCHAR(191) PRIMARY KEY,
                v MEDIUMTEXT NOT NULL,
                updated_at_unixms BIGINT NOT NULL
        )`,
		upsert: `INSERT INTO kv(k, v, updated_at_unixms) VALUES(?, ?, ?)
                ON DUPLICATE KEY UPDATE v=VALUES(v), updated_at_unixms=VALUES(updated_at_unixms)`,
	}
)

// SQL is a kv table in SQLite or MySQL.
type SQL struct {
	db      *sql.DB
	dialect dialect
}

// OpenSQLite opens (creating if needed) the SQLite file at path.
func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open(sqliteDialect.driver, path)
	if err != nil {
		return nil, err
	}
	// WAL lets read-only CLI commands run next to the web server or TUI; writers are
	// limited to one process by DirLock. busy_timeout avoids spurious "database is locked".
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}
	return newSQL(ctx, db, sqliteDialect)
}

// OpenMySQL connects with a go-sql-driver DSN, e.g. user:pass@tcp(127.0.0.1:3306)/todo.
func OpenMySQL(ctx context.Context, dsn string) (*SQL, error) {
	db, err := sql.Open(mysqlDialect.driver, dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, sqlCallTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	return newSQL(ctx, db, mysqlDialect)
}

func newSQL(ctx context.Context, db *sql.DB, d dialect) (*SQL, error) {
	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s migrate: %w", d.driver, err)
	}
	return &SQL{db: db, dialect: d}, nil
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, sqlCallTimeout)
	defer cancel()
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, sqlCallTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, s.dialect.upsert, key, value, time.Now().UTC().UnixMilli())
	return err
}

func (s *SQL) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
