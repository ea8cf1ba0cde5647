package cmd

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-browse/cmd/config"
	"github.com/mattsolo1/grove-browse/pkg/wrap"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	return log
}

// buildStore lays out a project directory with a nested document and a
// SQLite database next to it.
func buildStore(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "calc"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "calc", "input.yaml"),
		[]byte("steps: 100\ncells:\n  - 4\n  - 4\n  - 4\n"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "results.json"),
		[]byte(`{"energy": -3.5, "converged": true}`), 0o644))

	db, err := sql.Open("sqlite3", filepath.Join(root, "store.db"))
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`
		CREATE TABLE jobs (id INTEGER PRIMARY KEY, energy REAL);
		INSERT INTO jobs (energy) VALUES (-1.5), (-2.25);
	`)
	require.NoError(t, err)

	return root
}

func TestNavigateProjectEndToEnd(t *testing.T) {
	config.InitConfig()
	root := buildStore(t)

	src, closer, err := openSource(root)
	require.NoError(t, err)
	require.Nil(t, closer)

	trail, err := newTrail(src, testLogger())
	require.NoError(t, err)

	// Documents are offered as groups next to real directories.
	assert.Equal(t, []string{"calc", "results"}, trail.ListGroups())

	// Entering a document promotes its parsed content to the new position.
	require.NoError(t, trail.EnterGroup("results"))
	assert.Equal(t, []string{"converged", "energy"}, trail.ListNodes())
	assert.Equal(t, []string{"/", "results"}, trail.Segments())

	out, err := trail.SelectNode("energy")
	require.NoError(t, err)
	w := out.(*wrap.Wrapper)
	assert.Equal(t, wrap.KindPlain, w.Kind)
	assert.Equal(t, -3.5, w.Payload)

	// Back to the directory, then into the nested document.
	require.NoError(t, trail.Back())
	require.NoError(t, trail.EnterGroup("calc"))
	require.NoError(t, trail.EnterGroup("input"))
	assert.Equal(t, []string{"/", "calc", "input"}, trail.Segments())
	assert.Equal(t, []string{"cells"}, trail.ListGroups())
	assert.Equal(t, []string{"steps"}, trail.ListNodes())

	require.NoError(t, trail.JumpHome())
	assert.Equal(t, []string{"/"}, trail.Segments())
	require.NoError(t, trail.Forward())
	assert.Equal(t, []string{"/", "calc"}, trail.Segments())
}

func TestOpenSourceDatabase(t *testing.T) {
	config.InitConfig()
	root := buildStore(t)

	src, closer, err := openSource(filepath.Join(root, "store.db"))
	require.NoError(t, err)
	require.NotNil(t, closer)
	defer closer()

	trail, err := newTrail(src, testLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"jobs"}, trail.ListGroups())

	require.NoError(t, trail.EnterGroup("jobs"))
	out, err := trail.SelectNode("energy")
	require.NoError(t, err)
	assert.Equal(t, wrap.KindArray, out.(*wrap.Wrapper).Kind)
}

func TestOpenSourceRejectsOpaqueFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01}, 0o644))

	_, _, err := openSource(path)
	assert.Error(t, err)
}

func TestLsCommand(t *testing.T) {
	config.InitConfig()
	root := buildStore(t)

	var buf bytes.Buffer
	cmd := NewLsCmd(testLogger())
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{root, "calc"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "input/")
	assert.Contains(t, buf.String(), "input.yaml")
}

func TestLsHidesStorageFiles(t *testing.T) {
	config.InitConfig()
	root := buildStore(t)

	var buf bytes.Buffer
	cmd := NewLsCmd(testLogger())
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{root})
	require.NoError(t, cmd.Execute())
	assert.NotContains(t, buf.String(), "store.db")

	buf.Reset()
	cmd = NewLsCmd(testLogger())
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{root, "--all"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "store.db")
}

func TestShowCommand(t *testing.T) {
	config.InitConfig()
	root := buildStore(t)

	var buf bytes.Buffer
	cmd := NewShowCmd(testLogger())
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{filepath.Join(root, "store.db"), "jobs", "energy"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "Array: energy")
	assert.Contains(t, buf.String(), "-2.25")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewVersionCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--json"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `"version"`)
}
