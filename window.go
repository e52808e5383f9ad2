package bff

import (
	"fmt"
	"iter"
	"math"
	"reflect"
)

// Windows lazily produces sliding windows over a sequence. Values are
// created by Slide, SlideSlice, SlideString, or SlideAny; by the time a
// Windows exists every parameter has been validated, so iteration itself
// cannot fail.
//
// A Windows is single-use and not safe for concurrent use. Windows are
// produced on demand and iteration can be abandoned at any point with no
// cleanup; call the constructor again to start over.
type Windows[S any] struct {
	slice      func(start, end int) S
	n          int
	windowSize int
	step       int
	full       int
	emitted    int
}

// newWindows validates the window parameters against the sequence length
// and builds the iterator. The value checks run in a fixed order: window
// size first, then step, then sequence length.
func newWindows[S any](n int, slice func(start, end int) S, windowSize, step int) (*Windows[S], error) {
	if windowSize < step || windowSize <= 0 {
		return nil, fmt.Errorf("%w: window size %d with step %d", ErrInvalidWindowSize, windowSize, step)
	}
	if step <= 0 {
		return nil, fmt.Errorf("%w: step %d", ErrInvalidStep, step)
	}
	if n < windowSize {
		return nil, fmt.Errorf("%w: length %d with window size %d", ErrSequenceTooShort, n, windowSize)
	}

	return &Windows[S]{
		slice:      slice,
		n:          n,
		windowSize: windowSize,
		step:       step,
		full:       (n-windowSize)/step + 1,
	}, nil
}

// Slide applies a sliding window over any sequence implementing the
// Sequence capability. Full windows of exactly windowSize elements start
// at offsets 0, step, 2*step, and so on. When the sequence length is not
// a multiple of the window size, one extra window ending at the last
// element is produced after the full windows; with step equal to
// windowSize this is exactly the unconsumed remainder.
//
// Validation happens here, before any window is produced. Windows are
// views of the input, never copies.
//
// When to use:
//   - n-gram or shingle extraction over custom sequence types
//   - Rolling computations where each position needs surrounding context
//   - Splitting a sequence into fixed-size batches (step == windowSize)
//
// Example:
//
//	// Trigrams over a token list.
//	w, err := bff.Slide(bff.List[string]{"the", "quick", "brown", "fox"}, 3, 1)
//	if err != nil {
//		return err
//	}
//	for gram := range w.All() {
//		fmt.Println(gram)
//	}
//
// Parameters:
//   - seq: Input sequence; only Len and Slice are called on it
//   - windowSize: Elements per window (must be > 0 and >= step)
//   - step: Offset between consecutive windows (must be > 0)
//
// Returns the window iterator, or a validation error wrapping one of
// ErrInvalidWindowSize, ErrInvalidStep, or ErrSequenceTooShort.
func Slide[S Sequence[S]](seq S, windowSize, step int) (*Windows[S], error) {
	return newWindows(seq.Len(), seq.Slice, windowSize, step)
}

// SlideSlice applies a sliding window over a slice. Windows are
// sub-slices sharing the backing array with s; no elements are copied.
//
// Example:
//
//	w, err := bff.SlideSlice([]int{1, 2, 3, 4, 5, 6}, 5, 5)
//	if err != nil {
//		return err
//	}
//	for chunk := range w.All() {
//		fmt.Println(chunk) // [1 2 3 4 5], then [6]
//	}
func SlideSlice[S ~[]E, E any](s S, windowSize, step int) (*Windows[S], error) {
	return newWindows(len(s), func(start, end int) S { return s[start:end] }, windowSize, step)
}

// SlideString applies a sliding window over a string. Windows are
// sub-strings indexed by byte and share the string's backing data.
//
// Example:
//
//	w, err := bff.SlideString("abcdef", 2, 1)
//	if err != nil {
//		return err
//	}
//	for s := range w.All() {
//		fmt.Println(s) // ab, bc, cd, de, ef
//	}
func SlideString(s string, windowSize, step int) (*Windows[string], error) {
	return newWindows(len(s), func(start, end int) string { return s[start:end] }, windowSize, step)
}

// SlideAny applies a sliding window over a value whose type is only known
// at run time, for callers dispatching on dynamic input such as decoded
// JSON or reflection-driven pipelines. The sequence may be a string, a
// slice, or an array; windowSize and step may be any integer kind.
// Windows are produced as the sequence's own sub-sequence type boxed in
// an interface. Arrays are copied once up front so sub-slices can be
// taken from the copy.
//
// Beyond the value checks shared with Slide, SlideAny reports
// ErrNotIterable for a sequence that cannot be sliced and ErrInvalidType
// for non-integer window parameters. The checks run in a fixed order:
// sequence, step type, window size type, then the shared value checks.
func SlideAny(sequence, windowSize, step any) (*Windows[any], error) {
	v := reflect.ValueOf(sequence)
	switch v.Kind() {
	case reflect.String, reflect.Slice:
	case reflect.Array:
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)
		v = cp.Slice(0, cp.Len())
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotIterable, sequence)
	}

	st, err := intArg("step", step)
	if err != nil {
		return nil, err
	}
	ws, err := intArg("window size", windowSize)
	if err != nil {
		return nil, err
	}

	return newWindows(v.Len(), func(start, end int) any {
		return v.Slice(start, end).Interface()
	}, ws, st)
}

// intArg converts a dynamically typed window parameter to int, accepting
// any integer kind and nothing else.
func intArg(name string, value any) (int, error) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt {
			return 0, fmt.Errorf("%w: %s %d overflows int", ErrInvalidType, name, u)
		}
		return int(u), nil
	default:
		return 0, fmt.Errorf("%w: %s is %T", ErrInvalidType, name, value)
	}
}

// Next produces the next window. The boolean is false once all windows
// have been produced; subsequent calls keep returning false.
func (w *Windows[S]) Next() (S, bool) {
	if w.emitted < w.full {
		start := w.emitted * w.step
		w.emitted++
		return w.slice(start, start+w.windowSize), true
	}

	if mod := w.n % w.windowSize; mod != 0 && w.emitted == w.full {
		w.emitted++
		start := w.n - (w.windowSize - w.step) - mod
		return w.slice(start, w.n), true
	}

	var zero S
	return zero, false
}

// All returns the remaining windows as an iterator for use with a range
// statement. The iterator is single-use: breaking out of the loop keeps
// the current position, and ranging again resumes rather than restarts.
func (w *Windows[S]) All() iter.Seq[S] {
	return func(yield func(S) bool) {
		for win, ok := w.Next(); ok; win, ok = w.Next() {
			if !yield(win) {
				return
			}
		}
	}
}

// Count returns the total number of windows a complete iteration yields,
// independent of how many have been produced so far.
func (w *Windows[S]) Count() int {
	if w.n%w.windowSize != 0 {
		return w.full + 1
	}
	return w.full
}
