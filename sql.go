package bff

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
)

// DefaultSQLChunkSize is how many rows ReadSQLChunks materializes at a
// time when no chunk size is given.
const DefaultSQLChunkSize = 8000

// ReadSQLChunks runs a query and assembles the full result into a data
// frame, materializing chunkSize rows at a time so a large result never
// needs a single huge intermediate. Chunks are stacked with ConcatFrames,
// so column types detected per chunk are promoted consistently across the
// whole result. A non-positive chunkSize uses DefaultSQLChunkSize; a
// query with no rows yields an empty frame. Cancellation is honored
// through ctx both while streaming rows and between chunks.
func ReadSQLChunks(ctx context.Context, db *sql.DB, query string, chunkSize int, args ...any) (dataframe.DataFrame, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultSQLChunkSize
	}
	log := FromContext(ctx)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("reading columns: %w", err)
	}

	var (
		out     dataframe.DataFrame
		started bool
	)
	chunk := make([][]string, 1, chunkSize+1)
	chunk[0] = columns

	flush := func() error {
		if len(chunk) == 1 {
			return nil
		}
		df := dataframe.LoadRecords(chunk, dataframe.DetectTypes(true))
		if df.Err != nil {
			return fmt.Errorf("building frame: %w", df.Err)
		}
		if started {
			out, err = ConcatFrames(out, df)
			if err != nil {
				return err
			}
		} else {
			out = df
			started = true
		}
		log.Debugw("assembled chunk", "rows", len(chunk)-1, "total", out.Nrow())
		chunk = chunk[:1]
		return nil
	}

	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("scanning row: %w", err)
		}

		record := make([]string, len(values))
		for i, v := range values {
			record[i] = sqlValueString(v)
		}
		chunk = append(chunk, record)

		if len(chunk)-1 >= chunkSize {
			if err := flush(); err != nil {
				return dataframe.DataFrame{}, err
			}
			if err := ctx.Err(); err != nil {
				return dataframe.DataFrame{}, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("iterating rows: %w", err)
	}
	if err := flush(); err != nil {
		return dataframe.DataFrame{}, err
	}

	if !started {
		return dataframe.DataFrame{}, nil
	}
	return out, nil
}

// sqlValueString renders a driver value as the record form gota parses,
// with NULL standing in as NaN.
func sqlValueString(v any) string {
	switch val := v.(type) {
	case nil:
		return "NaN"
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
