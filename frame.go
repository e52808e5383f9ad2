package bff

import (
	"errors"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrColumnMismatch reports frames whose column sets differ where they
// are required to match.
var ErrColumnMismatch = errors.New("frames must have the same columns")

// ConcatFrames stacks the rows of right under left, matching columns by
// name. Both frames must have the same column set. The result keeps the
// narrowest type each column pair supports, promoting along
// bool < int < float < string, so concatenating two int columns stays
// int rather than widening to string. Neither input is modified.
func ConcatFrames(left, right dataframe.DataFrame) (dataframe.DataFrame, error) {
	if left.Err != nil {
		return left, left.Err
	}
	if right.Err != nil {
		return right, right.Err
	}

	leftTypes := make(map[string]series.Type, len(left.Names()))
	for _, name := range left.Names() {
		leftTypes[name] = left.Col(name).Type()
	}
	if len(right.Names()) != len(leftTypes) {
		err := fmt.Errorf("%w: %d vs %d", ErrColumnMismatch, len(leftTypes), len(right.Names()))
		return dataframe.DataFrame{Err: err}, err
	}

	want := make(map[string]series.Type, len(leftTypes))
	for _, name := range right.Names() {
		leftType, ok := leftTypes[name]
		if !ok {
			err := fmt.Errorf("%w: %q is missing on the left", ErrColumnMismatch, name)
			return dataframe.DataFrame{Err: err}, err
		}
		want[name] = promoteType(leftType, right.Col(name).Type())
	}

	out := left.Concat(right)
	if out.Err != nil {
		return out, out.Err
	}

	// Concat can widen mixed columns further than the promotion calls
	// for; re-assert the expected type per column.
	for name, typ := range want {
		if col := out.Col(name); col.Type() != typ {
			out = out.Mutate(series.New(col.Records(), typ, name))
			if out.Err != nil {
				return out, out.Err
			}
		}
	}
	return out, nil
}

// promoteType returns the narrowest type both operands fit in, along
// bool < int < float < string.
func promoteType(a, b series.Type) series.Type {
	if a == b {
		return a
	}
	rank := func(t series.Type) int {
		switch t {
		case series.Bool:
			return 0
		case series.Int:
			return 1
		case series.Float:
			return 2
		default:
			return 3
		}
	}
	if rank(a) > rank(b) {
		return a
	}
	return b
}

// LogFrame logs the shape of the frame at info level, prefixed with msg,
// and returns the frame unchanged so it can sit in the middle of a chain
// of frame operations.
func LogFrame(df dataframe.DataFrame, msg string) dataframe.DataFrame {
	Logger().Infof("%s(%d, %d)", msg, df.Nrow(), df.Ncol())
	return df
}

// MemUsage estimates the memory footprint of a frame. The returned map
// always holds a "total" entry; details adds one entry per column with
// its size and type. Numeric cells count eight bytes, booleans one, and
// strings their length plus a fixed per-entry overhead, so the figures
// are estimates rather than allocator truth.
func MemUsage(df dataframe.DataFrame, details bool) map[string]string {
	usage := make(map[string]string)

	var total int
	for _, name := range df.Names() {
		col := df.Col(name)
		size := columnBytes(col)
		total += size
		if details {
			usage[name] = fmt.Sprintf("%s (%s)", formatMB(size), col.Type())
		}
	}
	usage["total"] = formatMB(total)
	return usage
}

const stringEntryOverhead = 16

func columnBytes(col series.Series) int {
	switch col.Type() {
	case series.Int, series.Float:
		return 8 * col.Len()
	case series.Bool:
		return col.Len()
	default:
		size := stringEntryOverhead * col.Len()
		for _, record := range col.Records() {
			size += len(record)
		}
		return size
	}
}

func formatMB(bytes int) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}
