package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidJSON marks a body that is not syntactically valid JSON.
var ErrInvalidJSON = errors.New("request body is not valid JSON")

// FieldError describes one rejected field. Path uses dotted notation for
// list elements ("placements.2"), Received and Expected name JSON kinds.
type FieldError struct {
	Path     string `json:"path"`
	Message  string `json:"message"`
	Received string `json:"received,omitempty"`
	Expected string `json:"expected,omitempty"`
}

func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationError collects every FieldError found in one payload.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Paths lists the offending field paths in report order.
func (e *ValidationError) Paths() []string {
	out := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		out = append(out, fe.Path)
	}
	return out
}
