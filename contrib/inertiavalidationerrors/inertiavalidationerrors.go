// Package inertiavalidationerrors provides map-based validation errors
// that can be passed to inertia.WithValidationErrors.
package inertiavalidationerrors

import (
	"encoding/gob"
	"maps"
	"slices"

	"go.inout.gg/inertia/v2"
)

var (
	_ error                     = (*MapError)(nil)
	_ inertia.ValidationErrorer = (*MapError)(nil)
)

//nolint:gochecknoinits
func init() {
	gob.Register(&MapError{})
}

// MapError is a map of key-value pairs that can be used as validation errors.
// Key is the field name and value is the error message.
//
// Errors are reported sorted by field name.
type MapError map[string]string

func (m MapError) ValidationErrors() []inertia.ValidationError {
	errors := make([]inertia.ValidationError, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		errors = append(errors, inertia.NewValidationError(k, m[k]))
	}

	return errors
}

func (m MapError) Error() string { return "validation errors" }
func (m MapError) Len() int      { return len(m) }
