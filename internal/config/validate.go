package config

import "fmt"

// ValidationError represents a catalog validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a normalized catalog for errors the schema cannot express.
func Validate(cat *Catalog) error {
	if len(cat.Tasks) == 0 {
		return &ValidationError{Field: "tasks", Message: "must contain at least one task"}
	}

	seen := make(map[string]int, len(cat.Tasks))
	for i, task := range cat.Tasks {
		field := fmt.Sprintf("tasks[%d].command", i)
		if task.Command == "" {
			return &ValidationError{Field: field, Message: "must not be blank"}
		}
		if prev, ok := seen[task.Command]; ok {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicates tasks[%d].command %q", prev, task.Command),
			}
		}
		seen[task.Command] = i
	}
	return nil
}
