package inertiaprops

import (
	"maps"
	"slices"

	"go.inout.gg/inertia/v2"
)

var _ inertia.Proper = (*Map)(nil)

// Map is a convenient map-based Proper implementation for simple key-value props.
// Props are sorted by key, since maps are unordered.
//
// Values can be deferred (inertia.Lazy, inertia.LazyFunc, func() any, ...) and
// are resolved on every render. For props that are only resolved on demand
// use inertia.Optional.
type Map map[string]any

func (m Map) Props() inertia.Props {
	props := make(inertia.Props, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		props = append(props, inertia.NewProp(k, m[k]))
	}

	return props
}

func (m Map) Len() int { return len(m) }
