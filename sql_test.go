package bff

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSQLChunks(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name, age FROM people").WillReturnRows(
		sqlmock.NewRows([]string{"name", "age"}).
			AddRow("John", 24).
			AddRow("Mary", 20).
			AddRow("Jane", 25).
			AddRow("Greg", 23).
			AddRow("James", 28))

	// Five rows through a chunk size of two: two full chunks plus a
	// remainder get stacked back together.
	df, err := ReadSQLChunks(context.Background(), db, "SELECT name, age FROM people", 2)
	require.NoError(t, err)

	assert.Equal(t, 5, df.Nrow())
	assert.Equal(t, []string{"name", "age"}, df.Names())
	assert.Equal(t, []string{"John", "Mary", "Jane", "Greg", "James"}, df.Col("name").Records())
	assert.Equal(t, series.Int, df.Col("age").Type())
	assert.Equal(t, []float64{24, 20, 25, 23, 28}, df.Col("age").Float())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadSQLChunksPromotesAcrossChunks(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT v FROM metrics").WillReturnRows(
		sqlmock.NewRows([]string{"v"}).
			AddRow(1).
			AddRow(2).
			AddRow(3.5))

	// The first chunk detects int, the second float; the assembled
	// column must be float.
	df, err := ReadSQLChunks(context.Background(), db, "SELECT v FROM metrics", 2)
	require.NoError(t, err)

	assert.Equal(t, series.Float, df.Col("v").Type())
	assert.Equal(t, []float64{1, 2, 3.5}, df.Col("v").Float())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadSQLChunksWithArgs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	query := "SELECT name FROM people WHERE age > ?"
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(21).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("John"))

	df, err := ReadSQLChunks(context.Background(), db, query, 0, 21)
	require.NoError(t, err)

	assert.Equal(t, 1, df.Nrow())
	assert.Equal(t, []string{"John"}, df.Col("name").Records())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadSQLChunksEmptyResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name FROM people").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	df, err := ReadSQLChunks(context.Background(), db, "SELECT name FROM people", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, df.Nrow())
}

func TestReadSQLChunksQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name FROM people").
		WillReturnError(errors.New("connection lost"))

	_, err = ReadSQLChunks(context.Background(), db, "SELECT name FROM people", 10)
	assert.ErrorContains(t, err, "connection lost")
}

func TestReadSQLChunksCanceledContext(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ReadSQLChunks(ctx, db, "SELECT name FROM people", 10)
	assert.Error(t, err)
}
