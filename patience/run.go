package patience

// Run is an ordered, append-only run of items. I is the item a run holds (a
// value for slice storage, a list node for linked storage) and R is the
// concrete run type, so that two runs of the same kind can be merged.
//
// Runs never reorder what they hold: Append must only be called with an item
// that is not less than the current extremum.
type Run[I any, R any] interface {
	// Append adds item at the end of the run.
	Append(item I)

	// Extremum returns the last appended item. It is only called on
	// non-empty runs.
	Extremum() I

	// Len returns the number of items in the run.
	Len() int

	// MergeWith merges other, which must have been created after the
	// receiver, into the receiver and returns the merged run. Items of the
	// receiver come first among equal items. other must not be used again.
	MergeWith(other R) R
}
