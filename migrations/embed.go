// Package migrations holds the SQL that creates the mindwell store.
//
// Postgres uses numbered files applied by the migrator. SQLite uses a single
// idempotent schema run every time the database is opened.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

// PostgresDir is the directory inside Postgres that holds the files.
const PostgresDir = "postgres"

//go:embed sqlite/schema.sql
var SQLiteSchema string
