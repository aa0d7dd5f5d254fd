package record

import (
	"bytes"
	"fmt"
	"slices"
)

// Accessor reads and writes one field of a record type T.
// Set works on a copy of T and returns it, leaving the original untouched.
type Accessor[T any] struct {
	Name string
	Get  func(T) any
	Set  func(T, any) (T, error)
}

// Schema is the ordered field table of a record type
type Schema[T any] struct {
	name      string
	accessors []Accessor[T]
	normalize func(T) (T, error)
}

// NewSchema registers the fields of a record type in declaration order
func NewSchema[T any](name string, accessors ...Accessor[T]) *Schema[T] {
	return &Schema[T]{
		name:      name,
		accessors: slices.Clone(accessors),
	}
}

// Extend returns a schema for a type built around T: its fields are those of
// base, read through unwrap and written through rewrap, followed by extra.
func Extend[T, B any](name string, base *Schema[B], unwrap func(T) B, rewrap func(T, B) T, extra ...Accessor[T]) *Schema[T] {
	accessors := make([]Accessor[T], 0, len(base.accessors)+len(extra))
	for _, a := range base.accessors {
		accessors = append(accessors, Accessor[T]{
			Name: a.Name,
			Get: func(v T) any {
				return a.Get(unwrap(v))
			},
			Set: func(v T, value any) (T, error) {
				b, err := a.Set(unwrap(v), value)
				if err != nil {
					return v, err
				}
				return rewrap(v, b), nil
			},
		})
	}
	accessors = append(accessors, extra...)
	return NewSchema(name, accessors...)
}

// Normalize sets a hook run on the result of every Replace
func (s *Schema[T]) Normalize(fn func(T) (T, error)) *Schema[T] {
	s.normalize = fn
	return s
}

// Name returns the record type name
func (s *Schema[T]) Name() string {
	return s.name
}

// Names returns the field names in declaration order
func (s *Schema[T]) Names() []string {
	names := make([]string, len(s.accessors))
	for i, a := range s.accessors {
		names[i] = a.Name
	}
	return names
}

// Fields reads every field of v in declaration order
func (s *Schema[T]) Fields(v T) []Field {
	fields := make([]Field, len(s.accessors))
	for i, a := range s.accessors {
		fields[i] = Field{Name: a.Name, Value: a.Get(v)}
	}
	return fields
}

// Replace returns a copy of v with the named fields replaced.
// Unknown names fail before any field is written.
func (s *Schema[T]) Replace(v T, changes map[string]any) (T, error) {
	var keys []string
	for name := range changes {
		if !slices.ContainsFunc(s.accessors, func(a Accessor[T]) bool { return a.Name == name }) {
			keys = append(keys, name)
		}
	}
	if len(keys) > 0 {
		slices.Sort(keys)
		err := &UnknownFieldsError{Type: s.name, Fields: keys}
		if r, ok := any(v).(Record); ok {
			err.Record = r
		}
		return v, err
	}

	out := v
	for _, a := range s.accessors {
		value, ok := changes[a.Name]
		if !ok {
			continue
		}
		var err error
		out, err = a.Set(out, value)
		if err != nil {
			return v, fmt.Errorf("field %q of %s: %w", a.Name, s.name, err)
		}
	}

	if s.normalize != nil {
		normalized, err := s.normalize(out)
		if err != nil {
			return v, err
		}
		out = normalized
	}
	return out, nil
}

// Value builds an accessor for a field holding a plain value of type V
func Value[T, V any](name string, get func(T) V, set func(*T, V)) Accessor[T] {
	return Accessor[T]{
		Name: name,
		Get:  func(v T) any { return get(v) },
		Set: func(v T, value any) (T, error) {
			x, ok := value.(V)
			if !ok {
				return v, fmt.Errorf("%w: got %T, want %s", ErrFieldType, value, typeName[V]())
			}
			set(&v, x)
			return v, nil
		},
	}
}

// Float builds an accessor for a float64 field. Integer values are widened,
// so a mapper may return int for a coordinate.
func Float[T any](name string, get func(T) float64, set func(*T, float64)) Accessor[T] {
	return Accessor[T]{
		Name: name,
		Get:  func(v T) any { return get(v) },
		Set: func(v T, value any) (T, error) {
			var x float64
			switch n := value.(type) {
			case float64:
				x = n
			case float32:
				x = float64(n)
			case int:
				x = float64(n)
			case int64:
				x = float64(n)
			default:
				return v, fmt.Errorf("%w: got %T, want float64", ErrFieldType, value)
			}
			set(&v, x)
			return v, nil
		},
	}
}

// Bytes builds an accessor for a []byte field. Written values are copied.
func Bytes[T any](name string, get func(T) []byte, set func(*T, []byte)) Accessor[T] {
	return Accessor[T]{
		Name: name,
		Get:  func(v T) any { return get(v) },
		Set: func(v T, value any) (T, error) {
			var x []byte
			switch b := value.(type) {
			case []byte:
				x = bytes.Clone(b)
			case string:
				x = []byte(b)
			case nil:
			default:
				return v, fmt.Errorf("%w: got %T, want []byte", ErrFieldType, value)
			}
			set(&v, x)
			return v, nil
		},
	}
}

// Nested builds an accessor for an optional nested record of type N.
// Get yields nil when the field is unset and an N value otherwise; Set accepts
// nil, N or *N.
func Nested[T any, N Record](name string, get func(T) *N, set func(*T, *N)) Accessor[T] {
	return Accessor[T]{
		Name: name,
		Get: func(v T) any {
			p := get(v)
			if p == nil {
				return nil
			}
			return *p
		},
		Set: func(v T, value any) (T, error) {
			if value == nil {
				set(&v, nil)
				return v, nil
			}
			if n, ok := value.(N); ok {
				set(&v, &n)
				return v, nil
			}
			if p, ok := value.(*N); ok {
				if p == nil {
					set(&v, nil)
					return v, nil
				}
				n := *p
				set(&v, &n)
				return v, nil
			}
			return v, fmt.Errorf("%w: got %T, want %s", ErrFieldType, value, typeName[N]())
		},
	}
}
