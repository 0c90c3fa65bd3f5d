package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE scene_assets (id INTEGER PRIMARY KEY, url TEXT, kind TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "scene_assets")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["url"])
	assert.Equal(t, "text", colMap["kind"])

	// PRAGMA table_info returns no rows for an unknown table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE scene_assets (id INTEGER PRIMARY KEY, url TEXT)").Error)

	missing, err := MissingColumns(db, "scene_assets", "id", "URL", "kind", "position")
	require.NoError(t, err)
	assert.Equal(t, []string{"kind", "position"}, missing)
}
