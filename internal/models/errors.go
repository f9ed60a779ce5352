package models

import "strings"

// ValidationError lists every form field that was missing or invalid.
// Fields are form keys (name, goal, contactEmail, ...); callers localize them.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

// Add records a field once.
func (e *ValidationError) Add(field string) {
	if !contains(e.Fields, field) {
		e.Fields = append(e.Fields, field)
	}
}

// Err returns nil when no field was recorded.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
