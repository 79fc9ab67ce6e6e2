package tasks

import (
	"strings"

	"github.com/google/uuid"
)

const idPrefix = "task-"

// newTaskID returns task-<10 hex chars> taken from a random UUID.
// 10 hex chars of a v4 UUID are all random (~40 bits); exists guards the rare collision.
func newTaskID(exists func(string) bool) string {
	for {
		hex := strings.ReplaceAll(uuid.NewString(), "-", "")
		id := idPrefix + hex[:10]
		if exists == nil || !exists(id) {
			return id
		}
	}
}

// LooksLikeID reports whether s has the shape of a generated task id.
func LooksLikeID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, idPrefix) && len(s) > len(idPrefix)
}
