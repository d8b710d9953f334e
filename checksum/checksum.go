// Package checksum fingerprints collections of values independently of their
// order, so that a sort can be checked to have produced a permutation of its
// input.
package checksum

import (
	"errors"
	"fmt"
	"iter"

	perrors "github.com/amp-labs/patience/errors"
	"github.com/zeebo/xxh3"
)

// ErrMismatch is returned when two fingerprints differ, meaning the values
// are not a permutation of each other.
var ErrMismatch = errors.New("fingerprint mismatch")

// HashFunc hashes one value. Equal values must hash equally.
type HashFunc[T any] func(T) uint64

// String hashes a string with xxh3.
func String(s string) uint64 {
	return xxh3.HashString(s)
}

// Bytes hashes a byte slice with xxh3.
func Bytes(b []byte) uint64 {
	return xxh3.Hash(b)
}

// Fingerprint summarises a multiset of hashed values. Adding values in any
// order gives the same fingerprint.
type Fingerprint struct {
	Count int
	Sum   uint64
	Xor   uint64
	Mix   uint64
}

// Add folds one value hash into the fingerprint.
func (f *Fingerprint) Add(h uint64) {
	f.Count++
	f.Sum += h
	f.Xor ^= h
	// Sum and Xor alone cancel for some pairs of duplicates, so a rehash of
	// each value is summed as well.
	f.Mix += xxh3.HashSeed(leBytes(h), 0x9e3779b97f4a7c15)
}

// Equal reports whether both fingerprints summarise the same multiset (up to
// hash collisions).
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f == other
}

// String renders the fingerprint as count and hex digest.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%d:%016x%016x%016x", f.Count, f.Sum, f.Xor, f.Mix)
}

func leBytes(v uint64) []byte {
	return []byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
		byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
	}
}

// Of fingerprints every value of seq.
func Of[T any](seq iter.Seq[T], hash HashFunc[T]) Fingerprint {
	var f Fingerprint

	for v := range seq {
		f.Add(hash(v))
	}

	return f
}

// Strings fingerprints a slice of strings.
func Strings(values []string) Fingerprint {
	var f Fingerprint

	for _, v := range values {
		f.Add(String(v))
	}

	return f
}

// Verify checks that sorted is a permutation of the multiset summarised by
// before and that it is ordered by less. It returns ErrMismatch or
// errors.ErrNotSorted (with the offending index) otherwise.
func Verify[T any](before Fingerprint, sorted iter.Seq[T], less func(a, b T) bool, hash HashFunc[T]) error {
	var (
		after Fingerprint
		prev  T
	)

	for v := range sorted {
		if after.Count > 0 && less(v, prev) {
			return fmt.Errorf("%w: element %d sorts before element %d", perrors.ErrNotSorted, after.Count, after.Count-1)
		}

		after.Add(hash(v))
		prev = v
	}

	if !before.Equal(after) {
		return fmt.Errorf("%w: before %s, after %s", ErrMismatch, before, after)
	}

	return nil
}
