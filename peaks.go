package bff

import (
	"fmt"
	"time"
)

// DefaultPeakOrder is how many neighbors on each side a sample must
// dominate to count as a peak.
const DefaultPeakOrder = 5

// Peaks finds the local maxima of a time series. A sample is a peak when
// it is strictly greater than every value within order positions on each
// side. Comparisons near the edges clip to the series bounds, which
// keeps the first and last samples from qualifying. The peak times and
// values are returned in series order.
func Peaks(timestamps []time.Time, values []float64, order int) ([]time.Time, []float64, error) {
	if len(timestamps) != len(values) {
		return nil, nil, fmt.Errorf("timestamps and values must have the same length, got %d and %d", len(timestamps), len(values))
	}
	if order <= 0 {
		return nil, nil, fmt.Errorf("order must be greater than zero, got %d", order)
	}

	var peakTimes []time.Time
	var peakValues []float64
	for i := range values {
		if isPeak(values, i, order) {
			peakTimes = append(peakTimes, timestamps[i])
			peakValues = append(peakValues, values[i])
		}
	}
	return peakTimes, peakValues, nil
}

func isPeak(values []float64, i, order int) bool {
	for k := 1; k <= order; k++ {
		left := max(i-k, 0)
		right := min(i+k, len(values)-1)
		if values[i] <= values[left] || values[i] <= values[right] {
			return false
		}
	}
	return true
}
