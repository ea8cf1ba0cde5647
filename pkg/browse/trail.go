package browse

import "path"

// Trail decorates an Engine with a breadcrumb: the sequence of group names
// entered to reach the current position. Segments are kept in lock-step with
// the history ledger's truncate-on-branch rule, so the breadcrumb always
// reconstructs the path to entries[0..cursor] regardless of back/forward
// movement.
type Trail struct {
	*Engine
	segments []string
}

// NewTrail returns a path-tracking engine positioned at root.
func NewTrail(root Browsable, opts ...Option) (*Trail, error) {
	e, err := New(root, opts...)
	if err != nil {
		return nil, err
	}
	return &Trail{Engine: e, segments: []string{"/"}}, nil
}

// EnterGroup enters the named child and records it as a breadcrumb segment.
func (t *Trail) EnterGroup(name string) error {
	if err := t.Engine.EnterGroup(name); err != nil {
		return err
	}
	t.record(name)
	return nil
}

// SetCurrent assigns the position directly. The breadcrumb records the
// target's own path base name when it has one.
func (t *Trail) SetCurrent(b Browsable) error {
	if err := t.Engine.SetCurrent(b); err != nil {
		return err
	}
	seg := "…"
	if p, ok := b.(PathProvider); ok && p.Path() != "" {
		seg = path.Base(p.Path())
	}
	t.record(seg)
	return nil
}

// record truncates the segments to the (already advanced) cursor and
// appends, mirroring History.Record.
func (t *Trail) record(seg string) {
	t.segments = append(t.segments[:t.History().Cursor()], seg)
}

// Segments returns the breadcrumb up to and including the current position.
func (t *Trail) Segments() []string {
	end := t.History().Cursor() + 1
	if end > len(t.segments) {
		end = len(t.segments)
	}
	return append([]string(nil), t.segments[:end]...)
}

// Copy returns an independent path-tracking engine; see Engine.Copy.
func (t *Trail) Copy() *Trail {
	segments := make([]string, len(t.Segments()))
	copy(segments, t.Segments())
	return &Trail{Engine: t.Engine.Copy(), segments: segments}
}
