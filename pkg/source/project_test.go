package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-browse/pkg/browse"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// scaffold lays out a small project tree:
//
//	root/
//	  calc/
//	    input.yaml
//	    log.txt
//	  notes.md
//	  results.json
//	  store.h5
func scaffold(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "calc", "input.yaml"), "steps: 100\ncells:\n  - 1\n  - 2\n")
	writeFile(t, filepath.Join(root, "calc", "log.txt"), "started\n")
	writeFile(t, filepath.Join(root, "notes.md"), "# notes\n")
	writeFile(t, filepath.Join(root, "results.json"), `{"energy": -3.5}`)
	writeFile(t, filepath.Join(root, "store.h5"), "\x89HDF")
	return root
}

func TestProjectListings(t *testing.T) {
	p, err := OpenProject(scaffold(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"calc"}, p.ListGroups())
	assert.Equal(t, []string{"notes.md", "results.json", "store.h5"}, p.ListFiles())
	assert.Equal(t, []string{"results"}, p.ListNodes())
}

func TestProjectGetSubdirectory(t *testing.T) {
	p, err := OpenProject(scaffold(t))
	require.NoError(t, err)

	v, err := p.Get("calc")
	require.NoError(t, err)
	sub, ok := v.(*Project)
	require.True(t, ok)
	assert.Equal(t, []string{"input"}, sub.ListNodes())
	assert.Equal(t, p.RootPath(), sub.RootPath())
	assert.Equal(t, filepath.Join(p.RootPath(), "calc"), sub.Path())
}

func TestProjectGetDocumentByStem(t *testing.T) {
	p, err := OpenProject(scaffold(t))
	require.NoError(t, err)

	v, err := p.Get("results")
	require.NoError(t, err)
	doc, ok := v.(*Document)
	require.True(t, ok)
	assert.Equal(t, "results.json", doc.Name())

	data, err := doc.Load()
	require.NoError(t, err)
	c, ok := data.(*Container)
	require.True(t, ok)
	got, err := c.Get("energy")
	require.NoError(t, err)
	assert.Equal(t, -3.5, got)
}

func TestProjectRejectsRootEscape(t *testing.T) {
	p, err := OpenProject(scaffold(t))
	require.NoError(t, err)

	_, err = p.Get("../outside")
	assert.ErrorIs(t, err, browse.ErrNotFound)
	_, err = p.Get("nope")
	assert.ErrorIs(t, err, browse.ErrNotFound)
}

func TestOpenProjectErrors(t *testing.T) {
	_, err := OpenProject(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "f.txt")
	writeFile(t, file, "x")
	_, err = OpenProject(file)
	assert.Error(t, err)
}

func TestDocumentMetadataWithoutLoad(t *testing.T) {
	root := scaffold(t)
	doc := NewDocument(filepath.Join(root, "notes.md"))

	meta := doc.Metadata()
	assert.Equal(t, ".md", meta["ext"])
	assert.EqualValues(t, 8, meta["size"])
}

func TestDocumentLoadByExtension(t *testing.T) {
	root := scaffold(t)

	v, err := NewDocument(filepath.Join(root, "notes.md")).Load()
	require.NoError(t, err)
	assert.Equal(t, "# notes\n", v)

	v, err = NewDocument(filepath.Join(root, "store.h5")).Load()
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89HDF"), v)

	v, err = NewDocument(filepath.Join(root, "calc", "input.yaml")).Load()
	require.NoError(t, err)
	c, ok := v.(*Container)
	require.True(t, ok)
	assert.Equal(t, []string{"cells"}, c.ListGroups())
	assert.Equal(t, []string{"steps"}, c.ListNodes())
}

func TestProjectWithEngineNavigation(t *testing.T) {
	root := scaffold(t)
	p, err := OpenProject(root)
	require.NoError(t, err)

	e, err := browse.New(p,
		browse.WithShowFiles(true),
		browse.WithHiddenSuffixes([]string{".h5"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"calc", "results"}, e.ListGroups())
	assert.Equal(t, []string{"notes.md", "results.json"}, e.ListFiles())
	assert.Equal(t, root, e.RootPath())

	require.NoError(t, e.EnterGroup("calc"))
	assert.Equal(t, filepath.Join(root, "calc"), e.Path())
	require.NoError(t, e.Back())
	assert.Equal(t, root, e.Path())
}
