package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Items Table")
	require.NoError(t, err)

	assert.Contains(t, filepath.Base(mf.UpPath), "add_items_table.up.sql")
	assert.Contains(t, filepath.Base(mf.DownPath), "add_items_table.down.sql")

	_, err = os.Stat(mf.UpPath)
	require.NoError(t, err)
	_, err = os.Stat(mf.DownPath)
	require.NoError(t, err)

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Contains(t, migrations[0], "add_items_table")
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "add_items_table", sanitizeName("Add Items Table"))
	assert.Equal(t, "fix_v2", sanitizeName("fix--v2!"))
	assert.Equal(t, "trailing", sanitizeName("trailing "))
}

func TestListMigrationsMissingDir(t *testing.T) {
	migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, migrations)
}
