// Package normalizer validates loaded records and reconciles them into the shape the stats engine expects.
package normalizer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	validatorengine "github.com/go-playground/validator/v10"

	"mmpstats/internal/models"
)

// Validation errors.
var (
	ErrInvalidRecord = errors.New("invalid record")
	ErrDuplicateID   = errors.New("duplicate id")
)

// Validator checks records against their struct tags and id uniqueness.
type Validator struct {
	engine *validatorengine.Validate
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	engine := validatorengine.New()

	// Report fields by their JSON names.
	engine.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &Validator{engine: engine}
}

// ValidateEvents validates the events collection.
func (v *Validator) ValidateEvents(events []models.Event) error {
	return validateCollection(v, "events", events, func(e models.Event) int { return e.ID })
}

// ValidatePeople validates the people collection.
func (v *Validator) ValidatePeople(people []models.Person) error {
	return validateCollection(v, "people", people, func(p models.Person) int { return p.ID })
}

// ValidateLocations validates the locations collection.
func (v *Validator) ValidateLocations(locations []models.Location) error {
	return validateCollection(v, "locations", locations, func(l models.Location) int { return l.ID })
}

func validateCollection[T any](v *Validator, collection string, items []T, id func(T) int) error {
	seen := make(map[int]int, len(items))

	for i, item := range items {
		if err := v.engine.Struct(item); err != nil {
			return fmt.Errorf("%w: %s[%d]: %s", ErrInvalidRecord, collection, i, describe(err))
		}

		key := id(item)
		if first, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s[%d] repeats id %d of %s[%d]", ErrDuplicateID, collection, i, key, collection, first)
		}

		seen[key] = i
	}

	return nil
}

// describe flattens validator field errors into one line.
func describe(err error) string {
	var fieldErrs validatorengine.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if idx := strings.IndexByte(field, '.'); idx >= 0 {
			field = field[idx+1:]
		}

		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s fails %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s fails %s", field, fe.Tag()))
		}
	}

	return strings.Join(parts, "; ")
}
