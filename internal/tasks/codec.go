package tasks

import (
	"encoding/json"
	"fmt"
	"strings"

	"todo-cli/internal/model"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// tasksSchema describes the value stored under the "tasks" key.
// "id" is optional so lists written before IDs existed still load.
const tasksSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["text", "completed"],
    "properties": {
      "id": {"type": "string"},
      "text": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("todo://tasks.schema.json", tasksSchema)

// ValidationError lists the schema violations of a persisted task list.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid task list: " + strings.Join(e.Problems, "; ")
}

// Encode returns the persisted JSON form of tasks. A nil slice encodes as [].
func Encode(ts []model.Task) (string, error) {
	if ts == nil {
		ts = []model.Task{}
	}
	b, err := json.Marshal(ts)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses and validates a persisted task list. IDs may come back empty.
func Decode(raw string) ([]model.Task, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("decode tasks: empty value")
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return nil, schemaError(err)
	}

	var ts []model.Task
	if err := json.Unmarshal([]byte(raw), &ts); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if ts == nil {
		ts = []model.Task{}
	}
	return ts, nil
}

func schemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validate tasks: %w", err)
	}
	out := &ValidationError{}
	collectSchemaProblems(out, ve)
	return out
}

func collectSchemaProblems(out *ValidationError, ve *jsonschema.ValidationError) {
	if ve == nil {
		return
	}
	if len(ve.Causes) == 0 {
		loc := strings.TrimPrefix(ve.InstanceLocation, "/")
		if loc == "" {
			loc = "(root)"
		}
		out.Problems = append(out.Problems, loc+": "+ve.Message)
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaProblems(out, cause)
	}
}
