// Package repotest opens throwaway sqlite stores with the event schema for tests.
package repotest

import (
	"database/sql"
	_ "embed"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

var (
	//go:embed schema.sql
	Schema string

	//go:embed seed.sql
	Seed string
)

// Open returns an empty in-memory store with the schema applied.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return db
}

// OpenSeeded is Open plus the sample event data.
func OpenSeeded(t testing.TB) *sql.DB {
	t.Helper()

	db := Open(t)
	_, err := db.Exec(Seed)
	require.NoError(t, err)
	return db
}
