package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_SQLiteMemory(t *testing.T) {
	database, err := Init("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(database) })

	require.NoError(t, RunMigrations(database.DB, "sqlite"))

	version, err := Version(database.DB, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	var tables []string
	err = database.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'goose%' AND name NOT LIKE 'sqlite%' ORDER BY name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"checkins", "group_goals", "group_streaks", "kv_entries", "participants"}, tables)

	require.NoError(t, MigrateDown(database.DB, "sqlite"))
	version, err = Version(database.DB, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	database, err := Init("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(database) })

	assert.Error(t, RunMigrations(database.DB, "mysql"))
}
