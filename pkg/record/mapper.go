package record

import (
	"fmt"
	"slices"
)

// Mapper transforms a record into a (possibly different) record
type Mapper[R Record] func(R) (R, error)

// FieldMapper transforms a single field value
type FieldMapper func(value any) (any, error)

// MapperSpec describes a mapper. Exactly one of Func and Fields must be set;
// Match optionally restricts the mapper to matching records, letting every
// other record through unchanged.
type MapperSpec[R Record] struct {
	Match  Matcher
	Func   func(R) (R, error)
	Fields map[string]FieldMapper
}

const mapperUsage = `a mapper takes either a record function or field functions, optionally restricted to a type. For instance:
    - MapRecord(func(r R) (R, error) { ... })
    - MapType[R, TextBox](func(tb TextBox) (R, error) { ... })
    - MapFields[R](map[string]FieldMapper{"x1": Map(func(x float64) float64 { return x + 5 })})
    - MapTypeFields[R, TextBox](map[string]FieldMapper{"text": Map(strings.ToUpper)})`

// NewMapper builds a mapper from spec
func NewMapper[R Record](spec MapperSpec[R]) (Mapper[R], error) {
	hasFunc := spec.Func != nil
	hasFields := len(spec.Fields) > 0
	if hasFunc == hasFields {
		return nil, fmt.Errorf("%w: %s", ErrUsage, mapperUsage)
	}

	var m Mapper[R]
	if hasFunc {
		m = spec.Func
	} else {
		for name, fn := range spec.Fields {
			if fn == nil {
				return nil, fmt.Errorf("%w: nil mapper for field %q", ErrUsage, name)
			}
		}
		m = fieldsMapper[R](spec.Fields)
	}

	if spec.Match != nil {
		return restrictMapper(spec.Match, m), nil
	}
	return m, nil
}

// MapRecord builds a mapper from a whole-record function
func MapRecord[R Record](fn func(R) (R, error)) (Mapper[R], error) {
	return NewMapper(MapperSpec[R]{Func: fn})
}

// MapType builds a mapper that applies fn to records of type T only.
// Records embedding a T are matched as well: fn receives their T part, and when
// fn returns a T its fields are written back, so the record keeps its own type
// and fields.
func MapType[R Record, T any](fn func(T) (R, error)) (Mapper[R], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrUsage, mapperUsage)
	}
	return NewMapper(MapperSpec[R]{
		Match: Is[T](),
		Func: func(r R) (R, error) {
			if t, ok := any(r).(T); ok {
				return fn(t)
			}
			base, _ := As[T](r)
			out, err := fn(base)
			if err != nil {
				return out, err
			}
			if _, ok := any(out).(T); !ok {
				return out, nil
			}
			return writeBack(r, out)
		},
	})
}

// writeBack replaces the fields of r with those of the embedded part mapped into part
func writeBack[R Record](r R, part Record) (R, error) {
	var zero R
	changes := make(map[string]any)
	for _, f := range part.Fields() {
		changes[f.Name] = f.Value
	}
	replaced, err := r.Replace(changes)
	if err != nil {
		return zero, err
	}
	out, ok := replaced.(R)
	if !ok {
		return zero, fmt.Errorf("%w: %s replaced into %T", ErrRecordType, r.TypeName(), replaced)
	}
	return out, nil
}

// MapFields builds a mapper replacing each named field by its mapped value
func MapFields[R Record](fields map[string]FieldMapper) (Mapper[R], error) {
	return NewMapper(MapperSpec[R]{Fields: fields})
}

// MapTypeFields builds a field mapper that applies to records of type T only
func MapTypeFields[R Record, T any](fields map[string]FieldMapper) (Mapper[R], error) {
	return NewMapper(MapperSpec[R]{Match: Is[T](), Fields: fields})
}

// Map adapts a typed function into a FieldMapper
func Map[T any](fn func(T) T) FieldMapper {
	return func(value any) (any, error) {
		v, ok := value.(T)
		if !ok {
			return nil, fmt.Errorf("%w: got %T, want %s", ErrFieldType, value, typeName[T]())
		}
		return fn(v), nil
	}
}

func restrictMapper[R Record](match Matcher, m Mapper[R]) Mapper[R] {
	return func(r R) (R, error) {
		if !match(r) {
			return r, nil
		}
		return m(r)
	}
}

func fieldsMapper[R Record](fields map[string]FieldMapper) Mapper[R] {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	return func(r R) (R, error) {
		var zero R
		if missing := unknownFields(r, names); len(missing) > 0 {
			return zero, &UnknownFieldsError{Type: r.TypeName(), Fields: missing, Record: r}
		}

		changes := make(map[string]any, len(names))
		for _, name := range names {
			value, _ := Get(r, name)
			mapped, err := fields[name](value)
			if err != nil {
				return zero, fmt.Errorf("mapping field %q of %s: %w", name, r.TypeName(), err)
			}
			changes[name] = mapped
		}

		replaced, err := r.Replace(changes)
		if err != nil {
			return zero, err
		}
		out, ok := replaced.(R)
		if !ok {
			return zero, fmt.Errorf("%w: %s replaced into %T", ErrRecordType, r.TypeName(), replaced)
		}
		return out, nil
	}
}

// MapAll applies m to every entry, stopping at the first error
func MapAll[R Record](entries []R, m Mapper[R]) ([]R, error) {
	out := make([]R, 0, len(entries))
	for i, entry := range entries {
		mapped, err := m(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, mapped)
	}
	return out, nil
}
