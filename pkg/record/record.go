// Package record implements field-level access, flattening and transformation
// of structured records.
//
// A record is any value that can list its fields in declaration order and
// produce a copy of itself with some fields replaced. Concrete record types
// usually build that behavior from a [Schema], an ordered table of
// (name, getter, wither) accessors registered once per type. Everything else in
// this package (flattening, mappers, predicates and [Sequence]) works against
// the [Record] interface only, so it treats every record type uniformly.
//
// Mappers and predicates come in four shapes:
//
//   - whole record: MapRecord(fn), FilterRecord(fn)
//   - whole record, restricted to a type: MapType[R, T](fn), FilterType[R, T](fn)
//   - field keyed: MapFields(fields), FilterFields(fields)
//   - field keyed, restricted to a type: MapTypeFields[R, T](fields), FilterTypeFields[R, T](fields)
//
// Field keyed transforms check their field names against the record they are
// applied to, every time they are applied, since the same transform may run
// over records of different types.
package record

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

var (
	// ErrUsage is returned when a mapper or predicate is built or applied incorrectly
	ErrUsage = errors.New("invalid transform usage")

	// ErrFieldType is returned when a field value does not have the expected type
	ErrFieldType = errors.New("unexpected field type")

	// ErrRecordType is returned when a transform produces a record of the wrong type
	ErrRecordType = errors.New("unexpected record type")
)

// Record is a structured value with named fields
type Record interface {
	// TypeName returns the name of the concrete record type
	TypeName() string
	// Fields returns the record's fields in declaration order. Nested records
	// are returned as Record values, absent nested records as nil.
	Fields() []Field
	// Replace returns a copy of the record with the named fields replaced
	Replace(changes map[string]any) (Record, error)
}

// Field is a single named field value
type Field struct {
	Name  string
	Value any
}

// UnknownFieldsError reports field names that a record does not have
type UnknownFieldsError struct {
	Type   string   // Concrete record type
	Fields []string // Offending field names, sorted
	Record Record   // The record the transform was applied to
}

func (e *UnknownFieldsError) Error() string {
	quoted := make([]string, len(e.Fields))
	for i, name := range e.Fields {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("fields [%s] do not exist in record %v of type %s",
		strings.Join(quoted, ", "), e.Record, e.Type)
}

func (e *UnknownFieldsError) Unwrap() error { return ErrUsage }

// Matcher reports whether a record belongs to some type
type Matcher func(Record) bool

// Is returns a Matcher accepting records of type T. A record built on T by
// embedding it, directly or through other embedded structs, matches too, the
// way a PageTextBox is a TextBox. T may be an interface, in which case every
// record implementing it matches.
func Is[T any]() Matcher {
	return func(r Record) bool {
		_, ok := As[T](r)
		return ok
	}
}

// As returns r as a T. When r is not a T itself, the T it embeds is returned.
func As[T any](r Record) (T, bool) {
	if t, ok := any(r).(T); ok {
		return t, true
	}
	var zero T
	target := reflect.TypeFor[T]()
	if r == nil || target.Kind() == reflect.Interface {
		return zero, false
	}
	if v, ok := findEmbedded(reflect.ValueOf(r), target); ok {
		return v.Interface().(T), true
	}
	return zero, false
}

// findEmbedded searches the embedded fields of v, breadth first, for one of type target
func findEmbedded(v reflect.Value, target reflect.Type) (reflect.Value, bool) {
	queue := []reflect.Value{v}
	for len(queue) > 0 {
		v, queue = queue[0], queue[1:]
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				break
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			continue
		}
		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)
			if !field.Anonymous || !field.IsExported() {
				continue
			}
			fv := v.Field(i)
			if field.Type == target {
				return fv, true
			}
			queue = append(queue, fv)
		}
	}
	return reflect.Value{}, false
}

// Names returns the field names of r in declaration order
func Names(r Record) []string {
	fields := r.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// Get returns the value of the named field
func Get(r Record, name string) (any, bool) {
	for _, f := range r.Fields() {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Equal reports whether a and b are records of the same type with equal fields
func Equal(a, b Record) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.TypeName() != b.TypeName() {
		return false
	}
	fa, fb := a.Fields(), b.Fields()
	return slices.EqualFunc(fa, fb, func(x, y Field) bool {
		return x.Name == y.Name && valuesEqual(x.Value, y.Value)
	})
}

func valuesEqual(x, y any) bool {
	if rx, ok := x.(Record); ok {
		ry, ok := y.(Record)
		return ok && Equal(rx, ry)
	}
	if bx, ok := x.([]byte); ok {
		by, ok := y.([]byte)
		return ok && bytes.Equal(bx, by)
	}
	return reflect.DeepEqual(x, y)
}

// unknownFields returns the sorted names in keys that r does not have
func unknownFields(r Record, keys []string) []string {
	names := Names(r)
	var missing []string
	for _, key := range keys {
		if !slices.Contains(names, key) {
			missing = append(missing, key)
		}
	}
	slices.Sort(missing)
	return missing
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
