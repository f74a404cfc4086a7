package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMigrationFilesSorted(t *testing.T) {
	m := &Migrator{source: fstest.MapFS{
		"010_later.sql":  {Data: []byte("SELECT 1;")},
		"002_second.sql": {Data: []byte("SELECT 1;")},
		"001_first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("docs")},
		"noversion.sql":  {Data: []byte("SELECT 1;")},
	}}

	files, err := m.findMigrationFiles()
	require.NoError(t, err)

	var versions []string
	for _, f := range files {
		versions = append(versions, f.Version)
	}
	assert.Equal(t, []string{"001", "002", "010"}, versions)
}

func TestEmbeddedSchema(t *testing.T) {
	m := NewMigrator(nil)
	files, err := m.findMigrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001", files[0].Version)
}

func TestCalculateChecksum(t *testing.T) {
	a := calculateChecksum([]byte("CREATE TABLE x ();"))
	b := calculateChecksum([]byte("CREATE TABLE y ();"))
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
