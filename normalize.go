package bff

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/montanaflynn/stats"
)

// Scaler rescales one numeric column. Fit sees the whole column before
// any Transform call; the same instance is refitted for each column.
type Scaler interface {
	// Fit learns the column statistics the transform needs.
	Fit(values []float64) error

	// Transform maps a single value using the fitted statistics.
	Transform(value float64) float64
}

// StandardScaler centers values on the column mean and scales by the
// population standard deviation. A constant column transforms to zero.
type StandardScaler struct {
	mean float64
	std  float64
}

// Fit computes the column mean and population standard deviation.
func (s *StandardScaler) Fit(values []float64) error {
	mean, err := stats.Mean(values)
	if err != nil {
		return err
	}
	std, err := stats.StandardDeviationPopulation(values)
	if err != nil {
		return err
	}
	s.mean = mean
	s.std = std
	return nil
}

// Transform returns the z-score of value.
func (s *StandardScaler) Transform(value float64) float64 {
	if s.std == 0 {
		return 0
	}
	return (value - s.mean) / s.std
}

// MinMaxScaler rescales values linearly onto a feature range. The zero
// value scales onto [0, 1]; set Min and Max for another range. A
// constant column transforms to the low end of the range.
type MinMaxScaler struct {
	// Min and Max bound the output range. Both zero means [0, 1].
	Min float64
	Max float64

	dataMin float64
	dataMax float64
}

// Fit records the smallest and largest value of the column.
func (s *MinMaxScaler) Fit(values []float64) error {
	lo, err := stats.Min(values)
	if err != nil {
		return err
	}
	hi, err := stats.Max(values)
	if err != nil {
		return err
	}
	s.dataMin = lo
	s.dataMax = hi
	return nil
}

// Transform maps value from the fitted data range onto the feature range.
func (s *MinMaxScaler) Transform(value float64) float64 {
	lo, hi := s.Min, s.Max
	if lo == 0 && hi == 0 {
		hi = 1
	}
	span := s.dataMax - s.dataMin
	if span == 0 {
		return lo
	}
	return lo + (value-s.dataMin)*(hi-lo)/span
}

// Normalizer rescales the numeric columns of a data frame. Without
// options every numeric column is replaced by its scaled values; use
// WithColumns to restrict the set and WithSuffix to add scaled copies
// instead of replacing.
type Normalizer struct {
	scaler  Scaler
	columns []string
	suffix  string
}

// NewNormalizer creates a normalizer using the given scaler, or a
// MinMaxScaler with the default range when nil.
func NewNormalizer(scaler Scaler) *Normalizer {
	if scaler == nil {
		scaler = &MinMaxScaler{}
	}
	return &Normalizer{scaler: scaler}
}

// WithColumns restricts scaling to the named columns. Unlike the default
// selection, named columns must exist and be numeric.
func (n *Normalizer) WithColumns(columns ...string) *Normalizer {
	n.columns = columns
	return n
}

// WithSuffix writes scaled values to new columns named column+suffix,
// appended after the existing columns, leaving the originals in place.
func (n *Normalizer) WithSuffix(suffix string) *Normalizer {
	n.suffix = suffix
	return n
}

// Apply scales the selected columns and returns the resulting frame.
// The input frame is not modified.
func (n *Normalizer) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, df.Err
	}

	columns := n.columns
	if len(columns) == 0 {
		for _, name := range df.Names() {
			if isNumeric(df.Col(name)) {
				columns = append(columns, name)
			}
		}
	}

	out := df
	for _, name := range columns {
		col := out.Col(name)
		if col.Err != nil {
			return dataframe.DataFrame{Err: col.Err}, fmt.Errorf("column %q: %w", name, col.Err)
		}
		if !isNumeric(col) {
			err := fmt.Errorf("column %q is not numeric", name)
			return dataframe.DataFrame{Err: err}, err
		}

		values := col.Float()
		if err := n.scaler.Fit(values); err != nil {
			return dataframe.DataFrame{Err: err}, fmt.Errorf("fitting column %q: %w", name, err)
		}

		scaled := make([]float64, len(values))
		for i, v := range values {
			scaled[i] = n.scaler.Transform(v)
		}

		out = out.Mutate(series.New(scaled, series.Float, name+n.suffix))
		if out.Err != nil {
			return out, out.Err
		}
	}
	return out, nil
}

func isNumeric(s series.Series) bool {
	return s.Type() == series.Int || s.Type() == series.Float
}
