package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const lockFileName = "todo.lock"

// ErrLocked means a long-running process (web server or TUI) owns the data dir.
var ErrLocked = errors.New("data dir is in use")

// DirLock marks a data dir as owned by one long-running process.
//
// The web server and the TUI keep the task list in memory and write the whole list on
// every change, so a second writer on the same dir would be overwritten. They hold the
// lock while running; one-shot CLI mutations refuse to run while it exists.
type DirLock struct {
	path string
}

// LockPath returns the lock file guarding opts, or "" for backends without a data dir.
func LockPath(opts Options) string {
	backend, err := NormalizeBackend(opts.Backend)
	if err != nil {
		return ""
	}
	dir := strings.TrimSpace(opts.Dir)
	if dir == "" {
		return ""
	}
	switch backend {
	case BackendSQLite, BackendFile:
		return filepath.Join(dir, lockFileName)
	}
	return ""
}

// AcquireLock creates the lock file exclusively. owner is recorded for error messages.
func AcquireLock(opts Options, owner string) (*DirLock, error) {
	p := LockPath(opts)
	if p == "" {
		return &DirLock{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, lockedError(p)
		}
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	_, werr := fmt.Fprintf(f, "%s pid=%d\n", strings.TrimSpace(owner), os.Getpid())
	cerr := f.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(p)
		return nil, fmt.Errorf("acquire lock: %w", errors.Join(werr, cerr))
	}
	return &DirLock{path: p}, nil
}

// Release removes the lock file. Safe to call on a nil or no-op lock.
func (l *DirLock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// CheckUnlocked returns ErrLocked (wrapped with the holder) when another process owns the dir.
func CheckUnlocked(opts Options) error {
	p := LockPath(opts)
	if p == "" {
		return nil
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("check lock: %w", err)
	}
	return lockedError(p)
}

func lockedError(path string) error {
	holder := "another todo process"
	if b, err := os.ReadFile(path); err == nil {
		if s := strings.TrimSpace(string(b)); s != "" {
			holder = s
		}
	}
	return fmt.Errorf("%w by %s (make the change there, or stop it; remove %s if it crashed)", ErrLocked, holder, path)
}
