package inertia

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

const TagInertia = "inertia"

var (
	propDiscard   = "-"         //nolint:gochecknoglobals
	propOmitEmpty = "omitempty" //nolint:gochecknoglobals
	propLazy      = "lazy"      //nolint:gochecknoglobals
)

var lazyType = reflect.TypeFor[Lazy]() //nolint:gochecknoglobals

// ParseStruct converts a struct into Props using struct tags.
// It expects a struct pointer with JSON-encodable fields.
// Props are returned in field order.
//
// Only fields tagged with "inertia" are included; untagged fields are ignored.
//
// Tag format: `inertia:"name[,lazy][,omitempty]"`
//
// Tag components:
//   - name: Prop name sent to client. Use "-" to skip the field.
//     If empty, the field name is used.
//   - lazy: The prop is only resolved when requested by a partial reload,
//     see Optional. The field must implement Lazy.
//   - omitempty: Skip zero-value fields.
//
// Fields holding deferred values (Lazy, LazyFunc, func() any, ...) without
// the lazy option are resolved on every render.
//
// Example:
//
//	type PageProps struct {
//	    UserID int      `inertia:"user_id"`
//	    Posts  []Post   `inertia:"posts"`
//	    Stats  LazyFunc `inertia:"stats,lazy"`
//	    Draft  *Post    `inertia:"draft,omitempty"`
//	}
func ParseStruct(v any) (Props, error) {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr {
		return nil, errors.New("inertia: msg must be a pointer")
	}

	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return nil, errors.New("inertia: msg must be a struct")
	}

	typ := val.Type()
	numFields := typ.NumField()
	props := make(Props, 0, numFields)

	for i := range numFields {
		field := typ.Field(i)
		fieldVal := val.Field(i)

		// Skip unexported fields
		if !field.IsExported() {
			continue
		}

		inertiaTag, ok := field.Tag.Lookup(TagInertia)
		if !ok {
			continue
		}

		parts := strings.Split(inertiaTag, ",")

		fieldName := field.Name
		if parts[0] != "" {
			fieldName = parts[0]
		}

		if fieldName == propDiscard {
			continue
		}

		lazy := false
		omitEmpty := false

		for _, opt := range parts[1:] {
			switch opt {
			case propLazy:
				lazy = true
			case propOmitEmpty:
				omitEmpty = true
			default:
				return nil, fmt.Errorf("inertia: unknown option %q for field %s", opt, field.Name)
			}
		}

		if omitEmpty && fieldVal.IsZero() {
			continue
		}

		if !lazy {
			props = append(props, NewProp(fieldName, fieldVal.Interface()))
			continue
		}

		fn, err := toLazy(fieldVal)
		if err != nil {
			return nil, fmt.Errorf("inertia: field %s: %w", field.Name, err)
		}

		props = append(props, Optional(fieldName, fn))
	}

	return props, nil
}

// toLazy converts a reflect.Value to a Lazy
// if the value is Lazy convertible.
func toLazy(v reflect.Value) (Lazy, error) {
	if !v.Type().Implements(lazyType) {
		return nil, errors.New("lazy prop must implement inertia.Lazy")
	}

	if (v.Kind() == reflect.Interface || v.Kind() == reflect.Func || v.Kind() == reflect.Ptr) && v.IsNil() {
		return nil, errors.New("lazy prop must not be nil")
	}

	lazy, ok := v.Interface().(Lazy)
	if !ok {
		return nil, errors.New("invalid lazy value")
	}

	return lazy, nil
}
