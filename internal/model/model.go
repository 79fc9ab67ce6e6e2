package model

import "strings"

// Task is a single to-do entry.
//
// ID is assigned once at creation and never reused; it is the only way operations
// address a task. Order lives in the containing slice (insertion order).
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// NormalizeText trims surrounding whitespace. Empty results are rejected by callers.
func NormalizeText(s string) string {
	return strings.TrimSpace(s)
}

// CloneTasks returns a copy so callers can't mutate the store's backing array.
func CloneTasks(in []Task) []Task {
	out := make([]Task, len(in))
	copy(out, in)
	return out
}
