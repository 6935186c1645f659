package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/config"
)

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	assert.Error(t, err)
}

func TestOpenRunsMigrations(t *testing.T) {
	cfg := config.Config{DBDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "fyyur.db")}
	db, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, table := range []string{"venues", "artists", "shows"} {
		assertTableExists(t, db, table)
	}

	// Applying the schema a second time is a no-op.
	require.NoError(t, Migrate(context.Background(), db, config.DriverSQLite))
}

func TestForeignKeysEnforced(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "fk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(context.Background(), db, config.DriverSQLite))

	_, err = db.Exec(`INSERT INTO shows (venue_id, artist_id, start_time) VALUES (41, 42, '2030-01-01 20:00:00')`)
	assert.Error(t, err, "shows must reference existing venues and artists")
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("-- header\nCREATE TABLE a (id INT);\n\n  ;CREATE INDEX i ON a (id);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE INDEX i ON a (id)"}, stmts)
}

func TestMySQLMigrationEmbedded(t *testing.T) {
	content, err := migrations.ReadFile("migrations/mysql/001_init.sql")
	require.NoError(t, err)
	assert.Len(t, splitStatements(string(content)), 3)
}

func assertTableExists(t *testing.T, db *sql.DB, table string) {
	t.Helper()
	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
	require.NoError(t, err, "table %s", table)
	assert.Equal(t, table, name)
}

func TestSQLiteLowerFoldsUnicode(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "lower.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var got string
	require.NoError(t, db.QueryRow(`SELECT lower('CAFÉ ÉCLAIR Ünter')`).Scan(&got))
	assert.Equal(t, "café éclair ünter", got)

	var null sql.NullString
	require.NoError(t, db.QueryRow(`SELECT lower(NULL)`).Scan(&null))
	assert.False(t, null.Valid)
}
