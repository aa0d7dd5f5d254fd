package record

import (
	"iter"

	"github.com/gardar/wordmaze/pkg/sequence"
)

// Sequence is an ordered collection of records.
// Map and Filter never modify the receiver: they copy the sequence and give the
// copy new backing storage.
type Sequence[R Record] struct {
	sequence.Sequence[R]
}

// NewSequence creates a record sequence holding a copy of entries
func NewSequence[R Record](entries ...R) *Sequence[R] {
	s := &Sequence[R]{}
	s.Replace(entries)
	return s
}

// Contains reports whether a record equal to r is present
func (s *Sequence[R]) Contains(r R) bool {
	return s.ContainsFunc(func(entry R) bool { return Equal(entry, r) })
}

// Select returns a new sequence with the entries accepted by match
func (s *Sequence[R]) Select(match Matcher) *Sequence[R] {
	out := &Sequence[R]{}
	for entry := range s.Values() {
		if match(entry) {
			out.Append(entry)
		}
	}
	return out
}

// Tuples iterates over the entries flattened into positional values
func (s *Sequence[R]) Tuples() iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for entry := range s.Values() {
			if !yield(AsTuple(entry, true)) {
				return
			}
		}
	}
}

// Dicts iterates over the entries flattened into name/value maps
func (s *Sequence[R]) Dicts() iter.Seq[map[string]any] {
	return func(yield func(map[string]any) bool) {
		for entry := range s.Values() {
			if !yield(AsDict(entry, true)) {
				return
			}
		}
	}
}

// Map returns a new sequence with m applied to every entry
func (s *Sequence[R]) Map(m Mapper[R]) (*Sequence[R], error) {
	mapped, err := MapAll(s.Slice(), m)
	if err != nil {
		return nil, err
	}
	out := *s
	out.Replace(mapped)
	return &out, nil
}

// Filter returns a new sequence with the entries satisfying p
func (s *Sequence[R]) Filter(p Predicate[R]) (*Sequence[R], error) {
	kept, err := FilterAll(s.Slice(), p)
	if err != nil {
		return nil, err
	}
	out := *s
	out.Replace(kept)
	return &out, nil
}

// OfType iterates over the entries of s whose dynamic type is T.
// The iterator reads s each time it runs, so it can be ranged over repeatedly.
func OfType[T any, R Record](s *Sequence[R]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for entry := range s.Values() {
			if t, ok := any(entry).(T); ok {
				if !yield(t) {
					return
				}
			}
		}
	}
}
