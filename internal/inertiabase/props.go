package inertiabase

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Prop is a single named page property.
type Prop struct {
	Value any
	Key   string
}

// Props is an ordered collection of page properties.
//
// Keys are unique; the order of insertion is the order of serialization.
type Props []Prop

func (p Prop) Props() Props { return Props{p} }
func (p Prop) Len() int     { return 1 }

func (ps Props) Props() Props { return ps }
func (ps Props) Len() int     { return len(ps) }

// Get returns the value stored under key.
func (ps Props) Get(key string) (any, bool) {
	i := ps.index(key)
	if i < 0 {
		return nil, false
	}

	return ps[i].Value, true
}

// Keys returns the prop keys in order.
func (ps Props) Keys() []string {
	keys := make([]string, len(ps))
	for i, p := range ps {
		keys[i] = p.Key
	}

	return keys
}

// With returns a copy of ps with key set to value.
// An existing key keeps its position, a new key is appended.
func (ps Props) With(key string, value any) Props {
	out := slices.Clone(ps)
	if i := out.index(key); i >= 0 {
		out[i].Value = value
		return out
	}

	return append(out, Prop{Key: key, Value: value})
}

// Merge returns a copy of ps overlaid with other.
func (ps Props) Merge(other Props) Props {
	out := make(Props, len(ps), len(ps)+len(other))
	copy(out, ps)

	for _, p := range other {
		if i := out.index(p.Key); i >= 0 {
			out[i].Value = p.Value
			continue
		}

		out = append(out, p)
	}

	return out
}

// Pick returns the props whose keys are listed in keys, in their original
// relative order. Unknown keys are ignored.
func (ps Props) Pick(keys []string) Props {
	return ps.Filter(func(p Prop) bool { return slices.Contains(keys, p.Key) })
}

// Without returns a copy of ps with the given keys removed.
func (ps Props) Without(keys ...string) Props {
	return ps.Filter(func(p Prop) bool { return !slices.Contains(keys, p.Key) })
}

// Filter returns the props for which keep reports true.
func (ps Props) Filter(keep func(Prop) bool) Props {
	out := make(Props, 0, len(ps))
	for _, p := range ps {
		if keep(p) {
			out = append(out, p)
		}
	}

	return out
}

func (ps Props) index(key string) int {
	return slices.IndexFunc(ps, func(p Prop) bool { return p.Key == key })
}

// MarshalJSON encodes ps as a JSON object preserving the prop order.
func (ps Props) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	enc := jsontext.NewEncoder(&buf)
	if err := ps.encode(enc); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// encode writes ps to enc. Maps nested in prop values are encoded
// with sorted keys unless opts say otherwise.
func (ps Props) encode(enc *jsontext.Encoder, opts ...json.Options) error {
	opts = append([]json.Options{json.Deterministic(true)}, opts...)

	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err //nolint:wrapcheck
	}

	for _, p := range ps {
		if err := enc.WriteToken(jsontext.String(p.Key)); err != nil {
			return err //nolint:wrapcheck
		}

		if err := json.MarshalEncode(enc, p.Value, opts...); err != nil {
			return fmt.Errorf("prop %q: %w", p.Key, err)
		}
	}

	return enc.WriteToken(jsontext.EndObject) //nolint:wrapcheck
}
