package bff

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

func TestSlideString(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		windowSize int
		step       int
		want       []string
	}{
		{"step of one", "abcdef", 2, 1, []string{"ab", "bc", "cd", "de", "ef"}},
		{"step equals window", "abcdef", 2, 2, []string{"ab", "cd", "ef"}},
		{"single elements", "abcdefg", 1, 1, []string{"a", "b", "c", "d", "e", "f", "g"}},
		{"odd length remainder", "abcdefg", 2, 2, []string{"ab", "cd", "ef", "g"}},
		{"window covers sequence", "abcdefg", 7, 3, []string{"abcdefg"}},
		{"overlapping remainder", "abcdefgh", 6, 4, []string{"abcdef", "efgh"}},
		{"short remainder", "abcdefgh", 6, 5, []string{"abcdef", "fgh"}},
		{"longer remainder", "abcdefghi", 6, 5, []string{"abcdef", "fghi"}},
		{"alphabet partition", alphabet, 6, 6, []string{"abcdef", "ghijkl", "mnopqr", "stuvwx", "yz"}},
		{"alphabet overlap", alphabet, 6, 3, []string{"abcdef", "defghi", "ghijkl", "jklmno", "mnopqr", "pqrstu", "stuvwx", "vwxyz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := SlideString(tt.input, tt.windowSize, tt.step)
			require.NoError(t, err)

			assert.Equal(t, len(tt.want), w.Count())
			assert.Equal(t, tt.want, slices.Collect(w.All()))
		})
	}
}

func TestSlideStringValidation(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		windowSize int
		step       int
		wantErr    error
	}{
		{"step larger than window", alphabet, 2, 3, ErrInvalidWindowSize},
		{"negative window and step", alphabet, -1, -1, ErrInvalidWindowSize},
		{"zero window", alphabet, 0, 0, ErrInvalidWindowSize},
		{"zero step", alphabet, 2, 0, ErrInvalidStep},
		{"negative step", alphabet, 2, -1, ErrInvalidStep},
		{"sequence too short", "abc", 4, 1, ErrSequenceTooShort},
		{"empty sequence", "", 1, 1, ErrSequenceTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := SlideString(tt.input, tt.windowSize, tt.step)
			assert.Nil(t, w)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSlideSlice(t *testing.T) {
	w, err := SlideSlice([]int{1, 2, 3, 4, 5, 6}, 5, 5)
	require.NoError(t, err)

	assert.Equal(t, [][]int{{1, 2, 3, 4, 5}, {6}}, slices.Collect(w.All()))
}

func TestSlideSliceWindowsAreViews(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5, 6}

	w, err := SlideSlice(nums, 5, 5)
	require.NoError(t, err)

	first, ok := w.Next()
	require.True(t, ok)

	// Windows share the backing array, so writes to the input show
	// through already produced windows.
	nums[0] = 99
	assert.Equal(t, 99, first[0])
}

func TestSlideSequenceAdapter(t *testing.T) {
	w, err := Slide(String("abcdef"), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []String{"ab", "bc", "cd", "de", "ef"}, slices.Collect(w.All()))

	v, err := Slide(Vector{1.5, 2.5, 3.5, 4.5}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []Vector{{1.5, 2.5}, {3.5, 4.5}}, slices.Collect(v.All()))
}

func TestSlideLazyProduction(t *testing.T) {
	w, err := SlideString(alphabet, 6, 3)
	require.NoError(t, err)

	// Consume two windows, abandon, then resume through All.
	first, ok := w.Next()
	require.True(t, ok)
	assert.Equal(t, "abcdef", first)

	second, ok := w.Next()
	require.True(t, ok)
	assert.Equal(t, "defghi", second)

	var resumed []string
	for win := range w.All() {
		resumed = append(resumed, win)
		if len(resumed) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"ghijkl", "jklmno"}, resumed)

	// The iterator keeps its position across range statements.
	rest := slices.Collect(w.All())
	assert.Equal(t, []string{"mnopqr", "pqrstu", "stuvwx", "vwxyz"}, rest)

	_, ok = w.Next()
	assert.False(t, ok)
	_, ok = w.Next()
	assert.False(t, ok)
}

func TestSlideCount(t *testing.T) {
	tests := []struct {
		name       string
		length     int
		windowSize int
		step       int
		want       int
	}{
		{"exact multiple", 26, 13, 13, 2},
		{"with remainder", 26, 6, 6, 5},
		{"overlapping", 26, 6, 3, 8},
		{"dense", 6, 2, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := SlideString(alphabet[:tt.length], tt.windowSize, tt.step)
			require.NoError(t, err)

			assert.Equal(t, tt.want, w.Count())
			assert.Len(t, slices.Collect(w.All()), tt.want)
		})
	}
}

// Full windows taken step apart reconstruct the input: the first step
// bytes of each full window concatenate to a prefix of the sequence.
func TestSlideReconstruction(t *testing.T) {
	w, err := SlideString(alphabet, 6, 3)
	require.NoError(t, err)

	var b strings.Builder
	for win := range w.All() {
		if len(win) == 6 {
			b.WriteString(win[:3])
		}
	}
	assert.True(t, strings.HasPrefix(alphabet, b.String()))
}

func TestSlideAny(t *testing.T) {
	t.Run("string sequence", func(t *testing.T) {
		w, err := SlideAny("abcdef", 2, 1)
		require.NoError(t, err)

		want := []any{"ab", "bc", "cd", "de", "ef"}
		assert.Equal(t, want, slices.Collect(w.All()))
	})

	t.Run("slice sequence", func(t *testing.T) {
		w, err := SlideAny([]int{1, 2, 3, 4, 5, 6}, 5, 5)
		require.NoError(t, err)

		want := []any{[]int{1, 2, 3, 4, 5}, []int{6}}
		assert.Equal(t, want, slices.Collect(w.All()))
	})

	t.Run("array sequence", func(t *testing.T) {
		w, err := SlideAny([6]int{1, 2, 3, 4, 5, 6}, 3, 3)
		require.NoError(t, err)

		want := []any{[]int{1, 2, 3}, []int{4, 5, 6}}
		assert.Equal(t, want, slices.Collect(w.All()))
	})

	t.Run("other integer kinds", func(t *testing.T) {
		w, err := SlideAny("abcdef", int64(2), uint8(2))
		require.NoError(t, err)
		assert.Equal(t, 3, w.Count())
	})
}

func TestSlideAnyValidation(t *testing.T) {
	tests := []struct {
		name       string
		sequence   any
		windowSize any
		step       any
		wantErr    error
	}{
		{"int sequence", 3, 2, 1, ErrNotIterable},
		{"nil sequence", nil, 2, 1, ErrNotIterable},
		{"map sequence", map[string]int{"a": 1}, 2, 1, ErrNotIterable},
		{"float step", alphabet, 2, 1.0, ErrInvalidType},
		{"string step", alphabet, 2, "1", ErrInvalidType},
		{"float window", alphabet, 2.0, 1, ErrInvalidType},
		{"string window", alphabet, "2", 1, ErrInvalidType},
		{"window smaller than step", alphabet, 2, 3, ErrInvalidWindowSize},
		{"zero step", alphabet, 2, 0, ErrInvalidStep},
		{"short sequence", "abc", 4, 1, ErrSequenceTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := SlideAny(tt.sequence, tt.windowSize, tt.step)
			assert.Nil(t, w)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// Step type is checked before window size type, and window size value
// before step value, so mixed mistakes report consistently.
func TestSlideValidationOrder(t *testing.T) {
	_, err := SlideAny(alphabet, 2.0, "1")
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = SlideAny(alphabet, -1, -1)
	assert.ErrorIs(t, err, ErrInvalidWindowSize)

	_, err = SlideString(alphabet, -1, -1)
	assert.ErrorIs(t, err, ErrInvalidWindowSize)
}

func TestSlideIndependentIterators(t *testing.T) {
	a, err := SlideString(alphabet, 6, 6)
	require.NoError(t, err)
	b, err := SlideString(alphabet, 6, 6)
	require.NoError(t, err)

	first, ok := a.Next()
	require.True(t, ok)
	assert.Equal(t, "abcdef", first)

	// Consuming one iterator does not advance the other.
	other, ok := b.Next()
	require.True(t, ok)
	assert.Equal(t, "abcdef", other)
}
