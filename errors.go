package bff

import "errors"

// Validation errors reported by the sliding-window constructors.
// They are sentinels: the constructors wrap them with the offending
// parameter values, so match with errors.Is rather than equality.
var (
	// ErrNotIterable reports a value that cannot be treated as a sequence.
	// Only SlideAny can return it; the typed constructors rule this class
	// of mistake out at compile time.
	ErrNotIterable = errors.New("sequence must support length and slicing")

	// ErrInvalidType reports a window size or step that is not an integer.
	// Only SlideAny can return it.
	ErrInvalidType = errors.New("window size and step must be integers")

	// ErrInvalidWindowSize reports a window size smaller than the step or
	// not strictly positive.
	ErrInvalidWindowSize = errors.New("window size must be at least step and greater than zero")

	// ErrInvalidStep reports a step that is not strictly positive.
	ErrInvalidStep = errors.New("step must be greater than zero")

	// ErrSequenceTooShort reports a sequence shorter than the window size.
	ErrSequenceTooShort = errors.New("sequence length must be at least window size")
)
