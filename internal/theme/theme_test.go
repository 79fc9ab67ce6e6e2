package theme

import (
	"context"
	"errors"
	"testing"

	"todo-cli/internal/kv"
)

func TestState_DefaultsToLight_TogglePersistsDark(t *testing.T) {
	t.Parallel()

	mem := kv.NewMemory()
	s := New(mem, nil)
	s.Load()
	if s.Dark() || s.Name() != TokenLight {
		t.Fatalf("expected light by default, got %s", s.Name())
	}

	if !s.Toggle() {
		t.Fatalf("toggle should switch to dark")
	}
	v, ok, _ := mem.Get(context.Background(), kv.KeyTheme)
	if !ok || v != TokenDark {
		t.Fatalf("persisted token = %q (ok=%v), want dark", v, ok)
	}

	if s.Toggle() {
		t.Fatalf("second toggle should switch back to light")
	}
	v, _, _ = mem.Get(context.Background(), kv.KeyTheme)
	if v != TokenLight {
		t.Fatalf("persisted token = %q, want light", v)
	}
}

func TestState_Load_Tokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stored string
		dark   bool
	}{
		{"dark", true},
		{" dark\n", false},
		{"dark ", false},
		{"light", false},
		{"DARK", false},
		{"", false},
		{"solarized", false},
	}
	for _, tt := range tests {
		mem := kv.NewMemory()
		_ = mem.Set(context.Background(), kv.KeyTheme, tt.stored)
		s := New(mem, nil)
		s.Load()
		if s.Dark() != tt.dark {
			t.Fatalf("Load(%q): dark=%v want %v", tt.stored, s.Dark(), tt.dark)
		}
	}
}

func TestState_ToggleSaveFailureKeepsNewValue(t *testing.T) {
	t.Parallel()

	mem := kv.NewMemory()
	mem.FailSet = errors.New("read-only")
	s := New(mem, nil)
	s.Load()
	if !s.Toggle() {
		t.Fatalf("toggle should still flip in memory")
	}
	if s.LastSaveErr() == nil {
		t.Fatalf("expected save error to be recorded")
	}
}
