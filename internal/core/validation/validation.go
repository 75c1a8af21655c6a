// Package validation provides a small builder for the CRUD DTOs whose
// forms check several fields at once. The identity DTOs keep their own
// ordered checks because the first failing rule there is contractual.
package validation

import (
	"fmt"
	"strings"

	"github.com/am3lue/ProjectManagementSystem/internal"
)

type Builder struct {
	problems []string
}

func New() *Builder {
	return &Builder{}
}

func (b *Builder) Required(field, value string) *Builder {
	if strings.TrimSpace(value) == "" {
		b.problems = append(b.problems, fmt.Sprintf("%s is required", field))
	}
	return b
}

func (b *Builder) Range(field string, value, min, max int) *Builder {
	if value < min || value > max {
		b.problems = append(b.problems, fmt.Sprintf("%s must be between %d and %d", field, min, max))
	}
	return b
}

func (b *Builder) OneOf(field, value string, allowed ...string) *Builder {
	if value == "" {
		return b
	}
	for _, a := range allowed {
		if value == a {
			return b
		}
	}
	b.problems = append(b.problems, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
	return b
}

// Err returns a single ValidationError summarizing every failed rule, or
// nil when all passed.
func (b *Builder) Err() error {
	if len(b.problems) == 0 {
		return nil
	}
	return internal.NewValidationError(strings.Join(b.problems, "; "))
}
