// Package sequence provides a minimal mutable ordered container.
//
// A Sequence behaves like a resizable array: it supports indexed access,
// in-place assignment, deletion, insertion and membership tests. It carries no
// internal locking, so a Sequence that is mutated from several goroutines must
// be synchronized by the caller.
//
// Negative indices count from the end, so At(-1) is the last entry. Indices that
// are out of range panic, exactly like slice indexing does.
package sequence

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Sequence is an ordered collection of entries.
// The zero value is an empty sequence ready to use.
type Sequence[T any] struct {
	entries []T
}

// New creates a sequence holding a copy of the given entries
func New[T any](entries ...T) *Sequence[T] {
	return &Sequence[T]{entries: slices.Clone(entries)}
}

// Collect creates a sequence from every value produced by seq
func Collect[T any](seq iter.Seq[T]) *Sequence[T] {
	return &Sequence[T]{entries: slices.Collect(seq)}
}

// Len returns the number of entries
func (s *Sequence[T]) Len() int {
	return len(s.entries)
}

// At returns the entry at index i
func (s *Sequence[T]) At(i int) T {
	return s.entries[s.index(i)]
}

// Set replaces the entry at index i
func (s *Sequence[T]) Set(i int, entry T) {
	s.entries[s.index(i)] = entry
}

// Delete removes the entry at index i, shifting later entries down
func (s *Sequence[T]) Delete(i int) {
	s.entries = slices.Delete(s.entries, s.index(i), s.index(i)+1)
}

// Insert places entry before index i. Like list insertion, an index past either
// end is clamped, so Insert(Len(), v) appends.
func (s *Sequence[T]) Insert(i int, entry T) {
	n := len(s.entries)
	if i < 0 {
		i += n
	}
	i = max(0, min(i, n))
	s.entries = slices.Insert(s.entries, i, entry)
}

// Append adds entries at the end
func (s *Sequence[T]) Append(entries ...T) {
	s.entries = append(s.entries, entries...)
}

// IndexFunc returns the index of the first entry satisfying f, or -1
func (s *Sequence[T]) IndexFunc(f func(T) bool) int {
	return slices.IndexFunc(s.entries, f)
}

// ContainsFunc reports whether any entry satisfies f
func (s *Sequence[T]) ContainsFunc(f func(T) bool) bool {
	return s.IndexFunc(f) >= 0
}

// All iterates over index/entry pairs in order
func (s *Sequence[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, entry := range s.entries {
			if !yield(i, entry) {
				return
			}
		}
	}
}

// Values iterates over the entries in order
func (s *Sequence[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, entry := range s.entries {
			if !yield(entry) {
				return
			}
		}
	}
}

// Slice returns a copy of the entries
func (s *Sequence[T]) Slice() []T {
	return slices.Clone(s.entries)
}

// Clone returns a shallow copy: a new sequence with its own backing storage
func (s *Sequence[T]) Clone() *Sequence[T] {
	return New(s.entries...)
}

// Replace swaps the backing storage for a copy of entries
func (s *Sequence[T]) Replace(entries []T) {
	s.entries = slices.Clone(entries)
}

func (s *Sequence[T]) String() string {
	parts := make([]string, len(s.entries))
	for i, entry := range s.entries {
		parts[i] = fmt.Sprintf("%v", entry)
	}
	return "Sequence([" + strings.Join(parts, ", ") + "])"
}

func (s *Sequence[T]) index(i int) int {
	n := len(s.entries)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		panic(fmt.Sprintf("sequence: index %d out of range [0:%d]", i, n))
	}
	return i
}

// Contains reports whether entry is present in s
func Contains[T comparable](s *Sequence[T], entry T) bool {
	return slices.Contains(s.entries, entry)
}
