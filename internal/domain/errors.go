package domain

import (
	"fmt"
	"sort"
	"strings"
)

// DomainError signals a business rule violation. The message is safe to
// surface to API clients.
type DomainError struct {
	Message string
}

func NewDomainError(format string, args ...any) *DomainError {
	return &DomainError{Message: fmt.Sprintf(format, args...)}
}

func (e *DomainError) Error() string {
	return e.Message
}

// ValidationError collects every violation found for a request, keyed by
// field name. A single request can carry messages for multiple fields.
type ValidationError struct {
	Errors map[string][]string
}

func NewValidationError(errors map[string][]string) *ValidationError {
	return &ValidationError{Errors: errors}
}

// NewFieldError builds a ValidationError with a single message for one field.
func NewFieldError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Errors: map[string][]string{field: {fmt.Sprintf(format, args...)}},
	}
}

// Merge folds another ValidationError's messages into this one.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	if e.Errors == nil {
		e.Errors = map[string][]string{}
	}
	for field, messages := range other.Errors {
		e.Errors[field] = append(e.Errors[field], messages...)
	}
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, field := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", field, strings.Join(e.Errors[field], ", "))
	}
	return b.String()
}

// NotFoundError signals that a requested entity does not exist.
type NotFoundError struct {
	Entity string
	Key    any
}

func NewNotFoundError(entity string, key any) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q was not found", e.Entity, fmt.Sprint(e.Key))
}
