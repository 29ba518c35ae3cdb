// Package validation checks candidate movies before anything is written.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"movie-catalog/internal/data/entity"

	"github.com/go-playground/validator/v10"
)

// Violation names one field that broke a rule and why.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type Validator interface {
	// Validate returns nil for a valid movie, otherwise at least one violation.
	Validate(movie *entity.Movie) []Violation
}

type MovieValidator struct {
	validate *validator.Validate
}

func NewMovieValidator() *MovieValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("notblank", validateNotBlank)

	return &MovieValidator{validate: v}
}

func (v *MovieValidator) Validate(movie *entity.Movie) []Violation {
	if movie == nil {
		return []Violation{{Field: "movie", Reason: "is required"}}
	}

	err := v.validate.Struct(movie)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Violation{{Field: "movie", Reason: err.Error()}}
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{Field: fe.Field(), Reason: reason(fe)})
	}
	sort.Slice(violations, func(i, j int) bool {
		return violations[i].Field < violations[j].Field
	})

	return violations
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return "must not be blank"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return "is invalid"
	}
}
