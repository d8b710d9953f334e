package patience

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrUnknownTiePolicy is returned by ParseTiePolicy for unrecognized names.
var ErrUnknownTiePolicy = errors.New("unknown tie policy")

// TiePolicy decides where an element goes when it is equivalent to the
// extremum of a pile.
type TiePolicy int

const (
	// TiesExtend lets an element extend a pile whose extremum is equivalent
	// to it. Piles are non-decreasing, and the pile count is the length of the
	// longest strictly decreasing subsequence of the input. All-equal input
	// ends up on a single pile. Use TiesNewPile for the strict comparison
	// of classic patience sort, where an equal element starts a new pile.
	TiesExtend TiePolicy = iota

	// TiesNewPile only lets an element extend a pile whose extremum is
	// strictly less than it. Piles are strictly increasing, and the pile count
	// is the length of the longest non-increasing subsequence.
	TiesNewPile
)

func (p TiePolicy) String() string {
	switch p {
	case TiesExtend:
		return "extend"
	case TiesNewPile:
		return "new-pile"
	default:
		return fmt.Sprintf("TiePolicy(%d)", int(p))
	}
}

// ParseTiePolicy maps "extend" and "new-pile" (case-insensitive) to a TiePolicy.
func ParseTiePolicy(name string) (TiePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "extend":
		return TiesExtend, nil
	case "new-pile", "newpile", "strict":
		return TiesNewPile, nil
	default:
		return TiesExtend, fmt.Errorf("%w: %q", ErrUnknownTiePolicy, name)
	}
}

// Observer receives the statistics of every sort performed by a Sorter.
type Observer interface {
	ObserveSort(stats Stats)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(stats Stats)

// ObserveSort calls f(stats).
func (f ObserverFunc) ObserveSort(stats Stats) {
	f(stats)
}

// Options configure a Sorter.
type Options struct {
	Ties     TiePolicy
	Observer Observer
	Logger   *slog.Logger
}

// Option is a functional option for configuring a Sorter via New.
type Option func(*Options)

// WithTiePolicy sets the pile selection rule for equivalent elements.
func WithTiePolicy(policy TiePolicy) Option {
	return func(o *Options) {
		o.Ties = policy
	}
}

// WithObserver registers an observer that is called after every sort.
func WithObserver(observer Observer) Option {
	return func(o *Options) {
		o.Observer = observer
	}
}

// WithLogger makes the sorter emit one debug record per sort.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
