package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-browse/cmd/config"
	"github.com/mattsolo1/grove-browse/pkg/browse"
	"github.com/mattsolo1/grove-browse/pkg/source"
	"github.com/mattsolo1/grove-browse/pkg/wrap"
)

// openSource resolves a path to a browsable root: directories open as project
// trees, SQLite files as databases, structured documents as containers. The
// returned closer releases any underlying handle and may be nil.
func openSource(path string) (browse.Browsable, func() error, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	if fi.IsDir() {
		p, err := source.OpenProject(path)
		return p, nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		d, err := source.OpenDatabase(path)
		if err != nil {
			return nil, nil, err
		}
		return d, d.Close, nil
	default:
		data, err := source.NewDocument(path).Load()
		if err != nil {
			return nil, nil, err
		}
		b, ok := data.(browse.Browsable)
		if !ok {
			return nil, nil, fmt.Errorf("%s does not contain browsable data", path)
		}
		return b, nil, nil
	}
}

// newTrail builds a breadcrumb-tracking engine over root, configured from the
// effective settings and wired to the content adapter.
func newTrail(root browse.Browsable, log logrus.FieldLogger) (*browse.Trail, error) {
	opts := append(config.BuildOptions(),
		browse.WithPromoter(wrap.Promote),
		browse.WithResolver(wrap.Resolver()),
		browse.WithLogger(log),
	)
	return browse.NewTrail(root, opts...)
}

// descend walks the engine down a pre-selected group path, so commands can
// address nested positions directly.
func descend(t *browse.Trail, groups []string) error {
	for _, g := range groups {
		if err := t.EnterGroup(g); err != nil {
			return fmt.Errorf("enter %q: %w", g, err)
		}
	}
	return nil
}
