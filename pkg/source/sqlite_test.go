package source

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-browse/pkg/browse"
	"github.com/mattsolo1/grove-browse/pkg/wrap"
)

func seedDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE jobs (id INTEGER PRIMARY KEY, name TEXT, energy REAL);
		CREATE TABLE tags (label TEXT);
		INSERT INTO jobs (name, energy) VALUES ('min', -1.5), ('relax', -2.25), ('md', -0.75);
		INSERT INTO tags (label) VALUES ('fast'), ('converged');
	`)
	require.NoError(t, err)
	return path
}

func TestDatabaseListsTables(t *testing.T) {
	d, err := OpenDatabase(seedDatabase(t))
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, []string{"jobs", "tags"}, d.ListGroups())
	assert.Empty(t, d.ListNodes())
}

func TestDatabaseGetTable(t *testing.T) {
	d, err := OpenDatabase(seedDatabase(t))
	require.NoError(t, err)
	defer d.Close()

	v, err := d.Get("jobs")
	require.NoError(t, err)
	tbl, ok := v.(*Table)
	require.True(t, ok)
	assert.Equal(t, []string{"id", "name", "energy"}, tbl.ListNodes())
	assert.Empty(t, tbl.ListGroups())

	_, err = d.Get("missing")
	assert.ErrorIs(t, err, browse.ErrNotFound)
}

func TestTableColumnValues(t *testing.T) {
	d, err := OpenDatabase(seedDatabase(t))
	require.NoError(t, err)
	defer d.Close()

	v, err := d.Get("jobs")
	require.NoError(t, err)
	tbl := v.(*Table)

	col, err := tbl.Get("energy")
	require.NoError(t, err)
	arr, ok := col.(*wrap.Array)
	require.True(t, ok, "numeric column should come back as an array, got %T", col)
	assert.Equal(t, []int{3}, arr.Shape())
	assert.Equal(t, []float64{-1.5, -2.25, -0.75}, arr.Data())

	col, err = tbl.Get("name")
	require.NoError(t, err)
	assert.Equal(t, []string{"min", "relax", "md"}, col)

	_, err = tbl.Get("missing")
	assert.ErrorIs(t, err, browse.ErrNotFound)
}

func TestDatabaseWithEngine(t *testing.T) {
	d, err := OpenDatabase(seedDatabase(t))
	require.NoError(t, err)
	defer d.Close()

	e, err := browse.New(d, browse.WithResolver(wrap.Resolver()))
	require.NoError(t, err)

	require.NoError(t, e.EnterGroup("jobs"))
	w, err := e.SelectNode("id")
	require.NoError(t, err)
	assert.Equal(t, wrap.KindArray, w.(*wrap.Wrapper).Kind)

	require.NoError(t, e.Back())
	assert.Equal(t, []string{"jobs", "tags"}, e.ListGroups())
}

func TestOpenDatabaseMissingFile(t *testing.T) {
	// sqlite creates missing files on open; a directory path fails instead.
	_, err := OpenDatabase(t.TempDir())
	assert.Error(t, err)
}
