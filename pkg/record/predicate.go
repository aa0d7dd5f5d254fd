package record

import (
	"fmt"
	"slices"
)

// Predicate decides whether a record is kept
type Predicate[R Record] func(R) (bool, error)

// FieldPredicate tests a single field value
type FieldPredicate func(value any) (bool, error)

// PredicateSpec describes a predicate. Exactly one of Func and Fields must be
// set; Match optionally restricts the predicate so that only matching records
// are tested and every other record is accepted.
type PredicateSpec[R Record] struct {
	Match  Matcher
	Func   func(R) (bool, error)
	Fields map[string]FieldPredicate
}

const predicateUsage = `a predicate takes either a record function or field functions, optionally restricted to a type. For instance:
    - FilterRecord(func(r R) bool { ... })
    - FilterType[R, TextBox](func(tb TextBox) bool { ... })
    - FilterFields[R](map[string]FieldPredicate{"confidence": Test(func(c float64) bool { return c > 0.5 })})
    - FilterTypeFields[R, TextBox](map[string]FieldPredicate{"text": Test(func(s string) bool { return s != "" })})`

// NewPredicate builds a predicate from spec
func NewPredicate[R Record](spec PredicateSpec[R]) (Predicate[R], error) {
	hasFunc := spec.Func != nil
	hasFields := len(spec.Fields) > 0
	if hasFunc == hasFields {
		return nil, fmt.Errorf("%w: %s", ErrUsage, predicateUsage)
	}

	var p Predicate[R]
	if hasFunc {
		p = spec.Func
	} else {
		for name, fn := range spec.Fields {
			if fn == nil {
				return nil, fmt.Errorf("%w: nil predicate for field %q", ErrUsage, name)
			}
		}
		p = fieldsPredicate[R](spec.Fields)
	}

	if spec.Match != nil {
		return restrictPredicate(spec.Match, p), nil
	}
	return p, nil
}

// FilterRecord builds a predicate from a whole-record function
func FilterRecord[R Record](fn func(R) bool) (Predicate[R], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrUsage, predicateUsage)
	}
	return NewPredicate(PredicateSpec[R]{
		Func: func(r R) (bool, error) { return fn(r), nil },
	})
}

// FilterType builds a predicate that tests records of type T only, including
// records embedding a T, which are tested through their T part
func FilterType[R Record, T any](fn func(T) bool) (Predicate[R], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrUsage, predicateUsage)
	}
	return NewPredicate(PredicateSpec[R]{
		Match: Is[T](),
		Func: func(r R) (bool, error) {
			t, _ := As[T](r)
			return fn(t), nil
		},
	})
}

// FilterFields builds a predicate that holds when every field predicate holds
func FilterFields[R Record](fields map[string]FieldPredicate) (Predicate[R], error) {
	return NewPredicate(PredicateSpec[R]{Fields: fields})
}

// FilterTypeFields builds a field predicate that tests records of type T only
func FilterTypeFields[R Record, T any](fields map[string]FieldPredicate) (Predicate[R], error) {
	return NewPredicate(PredicateSpec[R]{Match: Is[T](), Fields: fields})
}

// Test adapts a typed function into a FieldPredicate
func Test[T any](fn func(T) bool) FieldPredicate {
	return func(value any) (bool, error) {
		v, ok := value.(T)
		if !ok {
			return false, fmt.Errorf("%w: got %T, want %s", ErrFieldType, value, typeName[T]())
		}
		return fn(v), nil
	}
}

func restrictPredicate[R Record](match Matcher, p Predicate[R]) Predicate[R] {
	return func(r R) (bool, error) {
		if !match(r) {
			return true, nil
		}
		return p(r)
	}
}

func fieldsPredicate[R Record](fields map[string]FieldPredicate) Predicate[R] {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	return func(r R) (bool, error) {
		if missing := unknownFields(r, names); len(missing) > 0 {
			return false, &UnknownFieldsError{Type: r.TypeName(), Fields: missing, Record: r}
		}

		for _, name := range names {
			value, _ := Get(r, name)
			ok, err := fields[name](value)
			if err != nil {
				return false, fmt.Errorf("testing field %q of %s: %w", name, r.TypeName(), err)
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
}

// FilterAll keeps the entries satisfying p, stopping at the first error
func FilterAll[R Record](entries []R, p Predicate[R]) ([]R, error) {
	out := make([]R, 0, len(entries))
	for i, entry := range entries {
		keep, err := p(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if keep {
			out = append(out, entry)
		}
	}
	return out, nil
}
