// Package tasks owns the ordered task list and keeps it synchronized with the kv store.
package tasks

import (
	"context"
	"io"
	"strings"

	"todo-cli/internal/kv"
	"todo-cli/internal/model"

	"github.com/charmbracelet/log"
)

// Store holds the task list in memory and persists the full list after every change.
// It assumes it is the only writer of the kv key (see kv.DirLock).
//
// Mutations never fail from the caller's point of view: invalid input and unknown IDs are
// no-ops (reported through the bool result), and persistence is best effort.
type Store struct {
	kv     kv.Store
	logger *log.Logger
	tasks  []model.Task

	lastSaveErr error
	newID       func(exists func(string) bool) string
}

func New(st kv.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		kv:     st,
		logger: logger,
		tasks:  []model.Task{},
		newID:  newTaskID,
	}
}

// Load replaces the in-memory list with the persisted one.
//
// Missing or malformed data yields an empty list. Entries without a (unique) ID are
// given one and the list is written back, so IDs stay stable across processes.
func (s *Store) Load() {
	s.tasks = []model.Task{}

	raw, ok, err := s.kv.Get(context.Background(), kv.KeyTasks)
	if err != nil {
		s.logger.Warn("load tasks: storage read failed; starting empty", "err", err)
		return
	}
	if !ok {
		return
	}
	ts, err := Decode(raw)
	if err != nil {
		s.logger.Warn("load tasks: malformed value; starting empty", "err", err)
		return
	}

	seen := map[string]bool{}
	assigned := 0
	for i := range ts {
		id := strings.TrimSpace(ts[i].ID)
		if id == "" || seen[id] {
			id = s.newID(func(c string) bool { return seen[c] || containsID(ts, c) })
			assigned++
		}
		ts[i].ID = id
		seen[id] = true
	}
	s.tasks = ts

	if assigned > 0 {
		s.logger.Info("assigned ids to stored tasks", "count", assigned)
		s.persist()
	}
}

func containsID(ts []model.Task, id string) bool {
	for _, t := range ts {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Tasks returns a copy of the list in insertion order.
func (s *Store) Tasks() []model.Task {
	return model.CloneTasks(s.tasks)
}

func (s *Store) Len() int { return len(s.tasks) }

// At returns the task at position i.
func (s *Store) At(i int) (model.Task, bool) {
	if i < 0 || i >= len(s.tasks) {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// IndexOf returns the position of id, or -1.
func (s *Store) IndexOf(id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) Find(id string) (model.Task, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) Has(id string) bool { return s.IndexOf(id) >= 0 }

// Add appends a new, not yet completed task. Blank text is ignored.
func (s *Store) Add(text string) (model.Task, bool) {
	text = model.NormalizeText(text)
	if text == "" {
		return model.Task{}, false
	}
	t := model.Task{
		ID:   s.newID(s.Has),
		Text: text,
	}
	s.tasks = append(s.tasks, t)
	s.persist()
	return t, true
}

// Toggle flips the completed flag of id.
func (s *Store) Toggle(id string) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.persist()
	return true
}

// Remove deletes id; the remaining tasks keep their relative order.
func (s *Store) Remove(id string) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	next := make([]model.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	s.tasks = next
	s.persist()
	return true
}

// UpdateText replaces the text of id. Blank text is ignored.
func (s *Store) UpdateText(id, text string) bool {
	text = model.NormalizeText(text)
	if text == "" {
		return false
	}
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Text = text
	s.persist()
	return true
}

// LastSaveErr is the error of the most recent persist attempt (nil after a success).
func (s *Store) LastSaveErr() error { return s.lastSaveErr }

func (s *Store) persist() {
	raw, err := Encode(s.tasks)
	if err == nil {
		err = s.kv.Set(context.Background(), kv.KeyTasks, raw)
	}
	s.lastSaveErr = err
	if err != nil {
		s.logger.Error("save tasks failed", "err", err, "count", len(s.tasks))
	}
}
