package kv

import (
	"context"
	"sync"
)

// Memory keeps values in process. It is the substitute collaborator for tests and
// for `--backend memory` sessions that should leave nothing behind.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string

	// FailSet, when set, is returned by every Set call (used to simulate a broken backend).
	FailSet error
}

func NewMemory() *Memory {
	return &Memory{m: map[string]string{}}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.m[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return m.FailSet
	}
	m.m[key] = value
	return nil
}

func (m *Memory) Close() error { return nil }
