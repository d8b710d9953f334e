// Package compare provides utilities for comparing values: equality and
// ordering interfaces, and a set of ready-made "less" functions that can be
// handed to the patience sorter.
package compare

// Comparable is a generic interface for types that can compare themselves for equality.
// Types implementing this interface must provide their own Equals method that determines
// whether two values are equal according to the type's semantics.
type Comparable[T any] interface {
	Equals(other T) bool
}

// Sortable extends Comparable with an ordering. LessThan must be a strict weak
// order that agrees with Equals: a.Equals(b) implies neither a.LessThan(b) nor
// b.LessThan(a).
type Sortable[T any] interface {
	Comparable[T]

	LessThan(other T) bool
}

// Equals compares two values using the Comparable interface.
// It delegates to the Equals method of the first argument.
func Equals[T any](a Comparable[T], b T) bool {
	return a.Equals(b)
}

// FromSortable returns a Less that orders values by their LessThan method.
func FromSortable[T Sortable[T]]() Less[T] {
	return func(a, b T) bool {
		return a.LessThan(b)
	}
}
