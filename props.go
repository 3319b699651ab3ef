package inertia

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/alitto/pond/v2"
	"go.inout.gg/foundations/debug"

	"go.inout.gg/inertia/v2/internal/inertiabase"
)

var (
	_ Proper = (Props)(nil)
	_ Proper = Prop{} //nolint:exhaustruct

	_ Lazy = (LazyFunc)(nil)
	_ Lazy = LazyProp{} //nolint:exhaustruct
)

type (
	// Prop is a single named property passed to the page component.
	Prop = inertiabase.Prop

	// Props is an ordered collection of props. The order of props is
	// preserved in the JSON payload.
	Props = inertiabase.Props
)

// Proper represents a collection of props that can be rendered.
// Implemented by Prop, Props and inertiaprops.Map.
type Proper interface {
	// Props returns the underlying props.
	Props() Props

	// Len returns the number of props in the collection.
	Len() int
}

// NewProp creates a prop.
//
// The value can be any JSON-serializable value, or a deferred value
// (Lazy, LazyFunc, func() any, func() (any, error) or
// func(context.Context) (any, error)) that is resolved when the page
// is rendered.
func NewProp(key string, value any) Prop {
	return Prop{Key: key, Value: value}
}

// Optional creates a prop that is left out of full page loads and
// only resolved when a partial reload explicitly requests it.
func Optional(key string, fn Lazy) Prop {
	return Prop{Key: key, Value: NewLazyProp(fn)}
}

type (
	// Lazy represents a prop value that is resolved on-demand rather than eagerly.
	Lazy interface {
		// Value resolves and returns the prop's value.
		// The returned value must be JSON-serializable.
		Value(context.Context) (any, error)
	}

	// LazyFunc is a function adapter that implements the Lazy interface.
	// The returned value must be JSON-serializable.
	LazyFunc func(context.Context) (any, error)
)

// Value calls `fn()`.
func (fn LazyFunc) Value(ctx context.Context) (any, error) { return fn(ctx) }

// LazyProp wraps a Lazy value that is excluded from full page loads.
//
// Unlike plain deferred values, which are resolved on every render,
// a LazyProp is resolved only when requested by a partial reload.
type LazyProp struct {
	fn Lazy
}

// NewLazyProp wraps fn into a LazyProp.
func NewLazyProp(fn Lazy) LazyProp {
	debug.Assert(fn != nil, "expected fn to be defined")

	return LazyProp{fn: fn}
}

// Value resolves the wrapped value.
func (p LazyProp) Value(ctx context.Context) (any, error) {
	return p.fn.Value(ctx) //nolint:wrapcheck
}

func isLazyProp(v any) bool {
	_, ok := v.(LazyProp)
	return ok
}

func isNotLazyProp(p Prop) bool { return !isLazyProp(p.Value) }

// isDeferred reports whether v is resolved by invoking it.
func isDeferred(v any) bool {
	switch v.(type) {
	case Lazy,
		func(context.Context) (any, error),
		func() (any, error),
		func() any:
		return true
	}

	return false
}

// resolveProps replaces every deferred value found in props, at any depth
// of Props, slice, array and string-keyed map values, with its result.
//
// Each deferred value is invoked exactly once. If concurrency is positive,
// top-level deferred values are resolved on a pool of that size;
// the result is identical to the sequential resolution.
func resolveProps(ctx context.Context, props Props, concurrency int) (Props, error) {
	out := slices.Clone(props)
	pending := make([]int, 0, len(out))

	for i, p := range out {
		if concurrency > 0 && isDeferred(p.Value) {
			pending = append(pending, i)
			continue
		}

		val, err := resolveValue(ctx, p.Value)
		if err != nil {
			return nil, fmt.Errorf("inertia: failed to resolve prop %s: %w", p.Key, err)
		}

		out[i].Value = val
	}

	if len(pending) == 0 {
		return out, nil
	}

	d("Resolving %d props concurrently (concurrency: %d)", len(pending), concurrency)

	pool := pond.NewResultPool[any](concurrency)
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)

	for _, i := range pending {
		prop := out[i]

		group.SubmitErr(func() (any, error) {
			val, err := resolveValue(ctx, prop.Value)
			if err != nil {
				return nil, fmt.Errorf("inertia: failed to resolve prop %s: %w", prop.Key, err)
			}

			return val, nil
		})
	}

	result, err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("inertia: failed to resolve concurrent props: %w", err)
	}

	for j, i := range pending {
		out[i].Value = result[j]
	}

	return out, nil
}

// resolveValue resolves a single value. Values returned by deferred
// values are not walked again.
func resolveValue(ctx context.Context, v any) (any, error) {
	switch v := v.(type) {
	case LazyProp:
		return v.Value(ctx)
	case Lazy:
		return v.Value(ctx) //nolint:wrapcheck
	case func(context.Context) (any, error):
		return v(ctx)
	case func() (any, error):
		return v()
	case func() any:
		return v(), nil
	case Props:
		out := make(Props, len(v))
		for i, p := range v {
			val, err := resolveValue(ctx, p.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p.Key, err)
			}

			out[i] = Prop{Key: p.Key, Value: val}
		}

		return out, nil
	case map[string]any:
		if v == nil {
			return v, nil
		}

		out := make(map[string]any, len(v))
		for _, key := range slices.Sorted(maps.Keys(v)) {
			val, err := resolveValue(ctx, v[key])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}

			out[key] = val
		}

		return out, nil
	case []any:
		if v == nil {
			return v, nil
		}

		out := make([]any, len(v))
		for i, item := range v {
			val, err := resolveValue(ctx, item)
			if err != nil {
				return nil, fmt.Errorf("%d: %w", i, err)
			}

			out[i] = val
		}

		return out, nil
	}

	return resolveReflectValue(ctx, v)
}

//nolint:gochecknoglobals
var propType = reflect.TypeFor[Prop]()

// resolveReflectValue resolves deferred values held by typed slices,
// arrays and string-keyed maps, e.g. []Props or map[string]func() any.
// Containers are rebuilt as []any and map[string]any.
func resolveReflectValue(ctx context.Context, v any) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || !mayHoldDeferred(rv.Type(), nil) {
		return v, nil
	}

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return v, nil
		}

		out := make([]any, rv.Len())
		for i := range rv.Len() {
			val, err := resolveValue(ctx, rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("%d: %w", i, err)
			}

			out[i] = val
		}

		return out, nil
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return v, nil
		}

		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int { return cmp.Compare(a.String(), b.String()) })

		out := make(map[string]any, len(keys))
		for _, key := range keys {
			val, err := resolveValue(ctx, rv.MapIndex(key).Interface())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key.String(), err)
			}

			out[key.String()] = val
		}

		return out, nil
	}

	return v, nil
}

// mayHoldDeferred reports whether a value of type t is, or is a container
// that may hold, a deferred value.
func mayHoldDeferred(t reflect.Type, seen map[reflect.Type]bool) bool {
	if t.Implements(lazyType) {
		return true
	}

	if seen[t] {
		return false
	}

	switch t.Kind() { //nolint:exhaustive
	case reflect.Interface, reflect.Func:
		return true
	case reflect.Slice, reflect.Array, reflect.Map:
		if seen == nil {
			seen = make(map[reflect.Type]bool)
		}

		seen[t] = true

		return mayHoldDeferred(t.Elem(), seen)
	case reflect.Struct:
		return t == propType
	}

	return false
}
