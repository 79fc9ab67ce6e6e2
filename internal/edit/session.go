// Package edit tracks the single in-progress rename of a task.
package edit

import "strings"

// Target is the part of the task store a session needs.
type Target interface {
	Has(id string) bool
	UpdateText(id, text string) bool
}

type Result int

const (
	// Idle: there was no session to commit.
	Idle Result = iota
	// Committed: the draft was written and the session closed.
	Committed
	// Rejected: the draft was blank; the session stays open.
	Rejected
	// Stale: the task disappeared; the session was closed without changes.
	Stale
)

func (r Result) String() string {
	switch r {
	case Committed:
		return "committed"
	case Rejected:
		return "rejected"
	case Stale:
		return "stale"
	default:
		return "idle"
	}
}

// Session is idle or editing exactly one task. The zero value is idle.
type Session struct {
	activeID string
	draft    string
}

func (s *Session) Active() (string, bool) {
	return s.activeID, s.activeID != ""
}

func (s *Session) Editing(id string) bool {
	return s.activeID != "" && s.activeID == id
}

func (s *Session) Draft() string { return s.draft }

// Begin starts editing id, replacing any edit already in progress.
func (s *Session) Begin(id, currentText string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	s.activeID = id
	s.draft = currentText
}

// Toggle begins editing id, or cancels when id is already being edited.
// It reports whether a session is active afterwards.
func (s *Session) Toggle(id, currentText string) bool {
	if s.Editing(id) {
		s.Cancel()
		return false
	}
	s.Begin(id, currentText)
	_, ok := s.Active()
	return ok
}

// UpdateDraft only has an effect while a session is active.
func (s *Session) UpdateDraft(text string) {
	if s.activeID == "" {
		return
	}
	s.draft = text
}

// Commit writes the draft to target. A blank draft is refused and the session stays open.
func (s *Session) Commit(target Target) Result {
	if s.activeID == "" {
		return Idle
	}
	if !target.Has(s.activeID) {
		s.Cancel()
		return Stale
	}
	if strings.TrimSpace(s.draft) == "" {
		return Rejected
	}
	if !target.UpdateText(s.activeID, s.draft) {
		return Rejected
	}
	s.Cancel()
	return Committed
}

func (s *Session) Cancel() {
	s.activeID = ""
	s.draft = ""
}

// Reconcile closes the session if its task no longer exists.
func (s *Session) Reconcile(target Target) {
	if s.activeID != "" && !target.Has(s.activeID) {
		s.Cancel()
	}
}
