package bff

// Sequence is the minimal capability the sliding-window engine needs from
// its input: a length and the ability to take a contiguous sub-sequence.
// The type parameter S is the implementing type itself, so windows keep
// the caller's concrete type.
//
// Implementations must return views that share the underlying data rather
// than copies; the engine never mutates a sequence and only calls Slice
// with 0 <= start <= end <= Len().
type Sequence[S any] interface {
	// Len returns the number of elements in the sequence.
	Len() int

	// Slice returns the sub-sequence covering [start:end).
	Slice(start, end int) S
}

// String adapts a Go string to the Sequence interface. Indexing is by
// byte, matching Go slice expressions; callers that need rune windows
// convert to []rune and use List or SlideSlice instead.
type String string

// Len returns the length of the string in bytes.
func (s String) Len() int { return len(s) }

// Slice returns the sub-string covering [start:end).
func (s String) Slice(start, end int) String { return s[start:end] }

// List adapts a slice of any element type to the Sequence interface.
// Sub-sequences share the backing array with the original slice.
type List[E any] []E

// Len returns the number of elements.
func (l List[E]) Len() int { return len(l) }

// Slice returns the sub-slice covering [start:end).
func (l List[E]) Slice(start, end int) List[E] { return l[start:end] }

// Vector is a numeric sequence, the shape shared with the stats and
// plotting helpers.
type Vector = List[float64]
