// Package filter derives the displayed subset of tasks without touching the task list.
package filter

import (
	"strings"

	"todo-cli/internal/model"
)

type Filter string

const (
	All       Filter = "all"
	Active    Filter = "active"
	Completed Filter = "completed"
)

// Values returns the filters in display order.
func Values() []Filter {
	return []Filter{All, Active, Completed}
}

// Parse accepts the canonical names (case-insensitive). Empty input means All.
func Parse(s string) (Filter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, true
	case "active":
		return Active, true
	case "completed", "done":
		return Completed, true
	}
	return All, false
}

func (f Filter) Label() string {
	switch f {
	case Active:
		return "Active"
	case Completed:
		return "Completed"
	default:
		return "All"
	}
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	switch f {
	case All:
		return Active
	case Active:
		return Completed
	default:
		return All
	}
}

func (f Filter) Match(t model.Task) bool {
	switch f {
	case Active:
		return !t.Completed
	case Completed:
		return t.Completed
	default:
		return true
	}
}

// Visible returns the tasks matching f in their original order.
func Visible(ts []model.Task, f Filter) []model.Task {
	out := make([]model.Task, 0, len(ts))
	for _, t := range ts {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

type Counts struct {
	All       int `json:"all"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

func Count(ts []model.Task) Counts {
	c := Counts{All: len(ts)}
	for _, t := range ts {
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}

func (c Counts) For(f Filter) int {
	switch f {
	case Active:
		return c.Active
	case Completed:
		return c.Completed
	default:
		return c.All
	}
}
