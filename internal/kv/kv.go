// Package kv is the key-value persistence collaborator used by the task store and theme state.
package kv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Keys written by the application.
const (
	KeyTasks = "tasks"
	KeyTheme = "theme"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
	BackendFile   = "file"
	BackendMemory = "memory"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a string-to-string key-value store.
//
// Get reports ok=false for a missing key; err is reserved for backend failures.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

type Options struct {
	// Backend is one of sqlite|mysql|file|memory (default: sqlite).
	Backend string
	// Dir is the data directory for file-based backends.
	Dir string
	// DSN is required for mysql.
	DSN string
}

func Backends() []string {
	return []string{BackendSQLite, BackendMySQL, BackendFile, BackendMemory}
}

func NormalizeBackend(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return BackendSQLite, nil
	}
	for _, b := range Backends() {
		if b == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected %s)", ErrUnknownBackend, name, strings.Join(Backends(), "|"))
}

// Open returns the backend selected by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	backend, err := NormalizeBackend(opts.Backend)
	if err != nil {
		return nil, err
	}
	dir := strings.TrimSpace(opts.Dir)

	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		if dir == "" {
			return nil, errors.New("kv: file backend needs a data dir")
		}
		return NewFile(filepath.Join(dir, fileStateName)), nil
	case BackendSQLite:
		if dir == "" {
			return nil, errors.New("kv: sqlite backend needs a data dir")
		}
		return OpenSQLite(ctx, filepath.Join(dir, sqliteFileName))
	case BackendMySQL:
		dsn := strings.TrimSpace(opts.DSN)
		if dsn == "" {
			return nil, errors.New("kv: mysql backend needs a dsn")
		}
		return OpenMySQL(ctx, dsn)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}
