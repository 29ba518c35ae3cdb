package usecase

import (
	"errors"
	"fmt"
	"strings"

	"movie-catalog/internal/validation"

	"github.com/google/uuid"
)

// ErrNotFound matches every *NotFoundError through errors.Is.
var ErrNotFound = errors.New("movie not found")

type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("movie %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError carries every rule the candidate broke. Nothing was written.
type ValidationError struct {
	Violations []validation.Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + " " + v.Reason
	}
	return "invalid movie: " + strings.Join(parts, "; ")
}

// Fields maps each offending field to its reason.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Violations))
	for _, v := range e.Violations {
		fields[v.Field] = v.Reason
	}
	return fields
}
