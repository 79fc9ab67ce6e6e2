// Package theme holds the persisted light/dark preference.
package theme

import (
	"context"
	"io"

	"todo-cli/internal/kv"

	"github.com/charmbracelet/log"
)

// Persisted tokens. Anything other than exactly TokenDark reads as light.
const (
	TokenDark  = "dark"
	TokenLight = "light"
)

type State struct {
	kv     kv.Store
	logger *log.Logger
	dark   bool

	lastSaveErr error
}

func New(st kv.Store, logger *log.Logger) *State {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &State{kv: st, logger: logger}
}

// Load reads the persisted token. Missing values and read failures mean light.
func (s *State) Load() {
	s.dark = false
	v, ok, err := s.kv.Get(context.Background(), kv.KeyTheme)
	if err != nil {
		s.logger.Warn("load theme: storage read failed; using light", "err", err)
		return
	}
	if !ok {
		return
	}
	s.dark = v == TokenDark
}

func (s *State) Dark() bool { return s.dark }

func (s *State) Name() string { return Token(s.dark) }

// Toggle flips the flag, persists it and returns the new value.
func (s *State) Toggle() bool {
	s.dark = !s.dark
	err := s.kv.Set(context.Background(), kv.KeyTheme, Token(s.dark))
	s.lastSaveErr = err
	if err != nil {
		s.logger.Error("save theme failed", "err", err, "theme", Token(s.dark))
	}
	return s.dark
}

func (s *State) LastSaveErr() error { return s.lastSaveErr }

func Token(dark bool) string {
	if dark {
		return TokenDark
	}
	return TokenLight
}
