package kv

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDirLock_ExclusiveUntilReleased(t *testing.T) {
	t.Parallel()

	opts := Options{Backend: BackendSQLite, Dir: filepath.Join(t.TempDir(), "data")}
	if err := CheckUnlocked(opts); err != nil {
		t.Fatalf("CheckUnlocked on fresh dir: %v", err)
	}

	l, err := AcquireLock(opts, "todo web")
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	if _, err := os.Stat(LockPath(opts)); err != nil {
		t.Fatalf("lock file missing: %v", err)
	}

	if _, err := AcquireLock(opts, "todo tui"); !errors.Is(err, ErrLocked) {
		t.Fatalf("second AcquireLock: expected ErrLocked, got %v", err)
	}
	err = CheckUnlocked(opts)
	if !errors.Is(err, ErrLocked) || !strings.Contains(err.Error(), "todo web pid=") {
		t.Fatalf("CheckUnlocked while held: %v", err)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("second Release: %v", err)
	}
	if err := CheckUnlocked(opts); err != nil {
		t.Fatalf("CheckUnlocked after release: %v", err)
	}
}

func TestDirLock_BackendsWithoutDataDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, opts := range []Options{
		{Backend: BackendMemory, Dir: dir},
		{Backend: BackendMySQL, DSN: "user@tcp(localhost)/todo"},
		{Backend: BackendFile},
	} {
		if p := LockPath(opts); p != "" {
			t.Fatalf("LockPath(%+v) = %q, want empty", opts, p)
		}
		l, err := AcquireLock(opts, "todo web")
		if err != nil {
			t.Fatalf("AcquireLock(%+v): %v", opts, err)
		}
		if _, err := AcquireLock(opts, "todo web"); err != nil {
			t.Fatalf("no-op lock should not conflict: %v", err)
		}
		_ = l.Release()
	}
	if LockPath(Options{Backend: BackendFile, Dir: dir}) != filepath.Join(dir, "todo.lock") {
		t.Fatalf("file backend should lock its dir")
	}
}
