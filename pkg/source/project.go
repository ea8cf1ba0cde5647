package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-browse/pkg/browse"
)

// documentExts are the file extensions listed as nodes (structured
// documents) next to the plain file listing. yaml.v3 parses JSON as well.
var documentExts = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// Project is a file-system backed Browsable. Directories are groups, plain
// directory entries are files, and structured documents are additionally
// listed as nodes under their stem. Every document node is openable: opening
// parses it and succeeds when the content is a container.
type Project struct {
	root string
	dir  string
}

// OpenProject opens a directory as the root of a browsable project tree.
func OpenProject(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("open project: %s is not a directory", abs)
	}
	return &Project{root: abs, dir: abs}, nil
}

// Path implements browse.PathProvider.
func (p *Project) Path() string { return p.dir }

// RootPath implements browse.RootPathProvider.
func (p *Project) RootPath() string { return p.root }

func (p *Project) entries() []os.DirEntry {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil
	}
	return entries
}

// ListGroups returns the subdirectory names.
func (p *Project) ListGroups() []string {
	var out []string
	for _, e := range p.entries() {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

// ListFiles returns all plain file names.
func (p *Project) ListFiles() []string {
	var out []string
	for _, e := range p.entries() {
		if !e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

// ListNodes returns the stems of structured documents.
func (p *Project) ListNodes() []string {
	var out []string
	for _, e := range p.entries() {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); documentExts[ext] {
			out = append(out, strings.TrimSuffix(e.Name(), ext))
		}
	}
	sort.Strings(out)
	return out
}

// OpenableNode implements browse.NodeOpener: any document may turn out to
// contain a browsable container, so all nodes are offered as groups. Whether
// opening actually succeeds is decided at entry time by the promoter.
func (p *Project) OpenableNode(string) bool { return true }

// Get resolves a child: a (possibly nested) relative directory path yields a
// sub-project, a document stem or plain file name yields a Document. Paths
// escaping the project root are rejected.
func (p *Project) Get(name string) (any, error) {
	target := filepath.Clean(filepath.Join(p.dir, name))
	if target != p.root && !strings.HasPrefix(target, p.root+string(filepath.Separator)) {
		return nil, fmt.Errorf("%q escapes the project root: %w", name, browse.ErrNotFound)
	}
	if fi, err := os.Stat(target); err == nil {
		if fi.IsDir() {
			return &Project{root: p.root, dir: target}, nil
		}
		return NewDocument(target), nil
	}
	// A node stem: try the document extensions.
	for ext := range documentExts {
		if fi, err := os.Stat(target + ext); err == nil && !fi.IsDir() {
			return NewDocument(target + ext), nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, browse.ErrNotFound)
}

// Document is a lazily parsed file reference. It satisfies the content
// adapter's FileRef contract: metadata from the file system immediately,
// the parsed payload only on Load.
type Document struct {
	path string
}

// NewDocument references the file at path.
func NewDocument(path string) *Document {
	return &Document{path: path}
}

// Name returns the file's base name.
func (d *Document) Name() string { return filepath.Base(d.path) }

// Path returns the referenced file path.
func (d *Document) Path() string { return d.path }

// Metadata returns file-system metadata without touching the content.
func (d *Document) Metadata() map[string]any {
	meta := map[string]any{
		"path": d.path,
		"ext":  filepath.Ext(d.path),
	}
	if fi, err := os.Stat(d.path); err == nil {
		meta["size"] = fi.Size()
		meta["modified"] = fi.ModTime()
	}
	return meta
}

// Load reads and parses the file. Structured documents that hold a mapping
// or sequence come back as a browsable Container; markdown and text come
// back as a string, anything else as raw bytes.
func (d *Document) Load() (any, error) {
	content, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", d.path, err)
	}
	ext := filepath.Ext(d.path)
	switch {
	case documentExts[ext]:
		var parsed any
		if err := yaml.Unmarshal(content, &parsed); err != nil {
			return nil, fmt.Errorf("parse %s: %w", d.path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(d.path), ext)
		switch v := parsed.(type) {
		case map[string]any:
			return FromMap(stem, v), nil
		case []any:
			return FromSlice(stem, v), nil
		default:
			return parsed, nil
		}
	case ext == ".md" || ext == ".txt":
		return string(content), nil
	default:
		return content, nil
	}
}
