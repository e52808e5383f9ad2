// Package bff provides building blocks for everyday data analysis work,
// from sliding windows over sequences to dataframe helpers, chunked SQL
// loading, parallel dataframe transforms, and quick plotting of model
// training runs and time series.
//
// The core abstraction is the Windows iterator produced by Slide and its
// variants, which walks a sequence in fixed-size windows advancing by a
// configurable step. Windows are views into the original sequence, computed
// lazily as the iterator is consumed.
//
// Basic usage:
//
//	windows, err := bff.SlideString("abcdefghi", 3, 3)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for w := range windows.All() {
//		fmt.Println(w) // abc def ghi
//	}
//
// The package also covers common analysis chores:
//   - Coercing scalars and keyword maps into lists
//   - Inverting and averaging maps
//   - Lenient date parsing for mixed-format inputs
//   - Concatenating dataframes and reporting their memory usage
//   - Reading SQL query results in chunks
//   - Normalizing numeric columns with pluggable scalers
//   - Peak detection in time series
//   - Training-history and time-series plots
//   - A YAML configuration loader with live reload
package bff
