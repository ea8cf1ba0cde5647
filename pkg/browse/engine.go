package browse

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// defaults mirror the metadata sentinels and storage suffixes the browsed
// sources carry along.
var (
	defaultReservedNodes  = []string{"NAME", "TYPE", "VERSION", "HDF_VERSION"}
	defaultHiddenSuffixes = []string{".h5", ".db"}
)

// Engine is the navigation state machine over a Browsable tree. It owns its
// History and selection exclusively; the underlying Browsable may be shared
// between engines (see Copy).
//
// The engine is single-threaded by contract: it is meant to be driven from a
// UI event loop, one event at a time. A busy guard rejects re-entrant calls
// with ErrBusy instead of interleaving them.
type Engine struct {
	history   *History
	selected  string
	data      any
	locked    bool
	showAll   bool
	showFiles bool

	reserved       []string
	hiddenSuffixes []string

	promote Promoter
	resolve Resolver
	logger  logrus.FieldLogger

	busy bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug traces of navigation events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithLocked starts the engine with navigation locked.
func WithLocked(locked bool) Option {
	return func(e *Engine) { e.locked = locked }
}

// WithShowAll disables reserved-node and hidden-file filtering.
func WithShowAll(showAll bool) Option {
	return func(e *Engine) { e.showAll = showAll }
}

// WithShowFiles controls whether ListFiles exposes the source's files.
func WithShowFiles(show bool) Option {
	return func(e *Engine) { e.showFiles = show }
}

// WithReservedNodes replaces the node names hidden unless show-all is set.
func WithReservedNodes(names []string) Option {
	return func(e *Engine) { e.reserved = names }
}

// WithHiddenSuffixes replaces the file suffixes hidden unless show-all is set.
func WithHiddenSuffixes(suffixes []string) Option {
	return func(e *Engine) { e.hiddenSuffixes = suffixes }
}

// WithPromoter sets the function used to open a fetched leaf value as a new
// browsable position.
func WithPromoter(p Promoter) Option {
	return func(e *Engine) { e.promote = p }
}

// WithResolver sets the content adapter applied to selected values.
func WithResolver(r Resolver) Option {
	return func(e *Engine) { e.resolve = r }
}

// New returns an engine positioned at root.
func New(root Browsable, opts ...Option) (*Engine, error) {
	if root == nil {
		return nil, fmt.Errorf("root: %w", ErrTypeMismatch)
	}
	e := &Engine{
		history:        NewHistory(root),
		showFiles:      true,
		reserved:       defaultReservedNodes,
		hiddenSuffixes: defaultHiddenSuffixes,
		logger:         logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// single wraps a state-mutating operation in the re-entrancy guard. The
// guard is released on every exit path.
func (e *Engine) single(fn func() error) error {
	if e.busy {
		return ErrBusy
	}
	e.busy = true
	defer func() { e.busy = false }()
	return fn()
}

// Current returns the Browsable under the history cursor.
func (e *Engine) Current() Browsable {
	return e.history.Current()
}

// History exposes the ledger for read-only inspection (breadcrumbs, button
// state). Callers must not Record through it.
func (e *Engine) History() *History {
	return e.history
}

// Selected returns the currently selected node name, if any.
func (e *Engine) Selected() (string, bool) {
	return e.selected, e.selected != ""
}

// Data returns the value fetched when the current selection was made. It is
// cached for the lifetime of the selection.
func (e *Engine) Data() any {
	return e.data
}

// Locked reports whether navigation is locked.
func (e *Engine) Locked() bool {
	return e.locked
}

// SetLocked toggles the lock. It does not move history.
func (e *Engine) SetLocked(locked bool) {
	e.locked = locked
}

// ShowAll reports whether reserved nodes and hidden files are shown.
func (e *Engine) ShowAll() bool {
	return e.showAll
}

// SetShowAll toggles reserved-node and hidden-file filtering.
func (e *Engine) SetShowAll(showAll bool) {
	e.showAll = showAll
}

// ShowFiles reports whether ListFiles exposes the source's files.
func (e *Engine) ShowFiles() bool {
	return e.showFiles
}

// SetShowFiles toggles file listing.
func (e *Engine) SetShowFiles(show bool) {
	e.showFiles = show
}

// moveTo installs a new current position: record it and drop selection
// state. Only called once the position is fully resolved, so a failed entry
// never leaves a partial mutation behind.
func (e *Engine) moveTo(b Browsable) {
	e.history.Record(b)
	e.selected = ""
	e.data = nil
}

// EnterGroup makes the named child the new current position. A child that is
// not itself Browsable is offered to the promoter; if that fails too the
// position is unchanged and the error is returned for display.
func (e *Engine) EnterGroup(name string) error {
	return e.single(func() error {
		if e.locked {
			return ErrLocked
		}
		cur := e.history.Current()
		val, err := cur.Get(name)
		if err != nil {
			return err
		}
		next, err := e.asBrowsable(val, cur, name)
		if err != nil {
			return err
		}
		e.moveTo(next)
		e.logger.WithFields(logrus.Fields{"group": name, "cursor": e.history.Cursor()}).
			Debug("entered group")
		return nil
	})
}

func (e *Engine) asBrowsable(val any, origin Browsable, relPath string) (Browsable, error) {
	if b, ok := val.(Browsable); ok {
		return b, nil
	}
	if e.promote != nil {
		b, err := e.promote(val, origin, relPath)
		if err != nil {
			return nil, err
		}
		if b != nil {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", relPath, ErrWrapFailed)
}

// SetCurrent assigns the position directly, bypassing name lookup. Passing
// nil is a contract violation and reported as ErrTypeMismatch.
func (e *Engine) SetCurrent(b Browsable) error {
	return e.single(func() error {
		if b == nil {
			return ErrTypeMismatch
		}
		if e.locked {
			return ErrLocked
		}
		e.moveTo(b)
		return nil
	})
}

// SelectNode selects a node, fetching and caching its value. Selecting the
// already-selected node clears the selection (toggle). Fetch errors leave
// the selection cleared and are returned for display. The resolved
// descriptor (see WithResolver) is returned on success, nil on toggle-off.
func (e *Engine) SelectNode(name string) (any, error) {
	var out any
	err := e.single(func() error {
		if name == e.selected {
			e.selected = ""
			e.data = nil
			return nil
		}
		val, err := e.history.Current().Get(name)
		if err != nil {
			e.selected = ""
			e.data = nil
			return err
		}
		e.selected = name
		e.data = val
		if e.resolve != nil {
			out = e.resolve(val, e.history.Current(), name)
		} else {
			out = val
		}
		return nil
	})
	return out, err
}

// ResetSelection clears the selection unconditionally. No history effect.
func (e *Engine) ResetSelection() {
	e.selected = ""
	e.data = nil
}

// SetData writes a value back to the currently selected node, for sources
// that support it. The selection survives so the caller sees the new value.
func (e *Engine) SetData(value any) error {
	return e.single(func() error {
		if e.selected == "" {
			return fmt.Errorf("no node selected: %w", ErrNotFound)
		}
		setter, ok := e.history.Current().(Setter)
		if !ok {
			return fmt.Errorf("source is read-only: %w", ErrTypeMismatch)
		}
		if err := setter.Set(e.selected, value); err != nil {
			return err
		}
		e.data = value
		return nil
	})
}

// Back moves one step backwards in history.
func (e *Engine) Back() error {
	return e.single(func() error {
		if e.locked {
			return ErrLocked
		}
		if _, err := e.history.Back(); err != nil {
			return err
		}
		e.selected = ""
		e.data = nil
		return nil
	})
}

// Forward moves one step forwards in history.
func (e *Engine) Forward() error {
	return e.single(func() error {
		if e.locked {
			return ErrLocked
		}
		if _, err := e.history.Forward(); err != nil {
			return err
		}
		e.selected = ""
		e.data = nil
		return nil
	})
}

// Jump moves to an absolute history index.
func (e *Engine) Jump(idx int) error {
	return e.single(func() error {
		if e.locked {
			return ErrLocked
		}
		if _, err := e.history.Jump(idx); err != nil {
			return err
		}
		e.selected = ""
		e.data = nil
		return nil
	})
}

// JumpHome returns to the first recorded position.
func (e *Engine) JumpHome() error {
	return e.Jump(0)
}

// Copy returns an engine over the same underlying data with an independent
// history (entries up to the cursor), the same configuration and no
// selection.
func (e *Engine) Copy() *Engine {
	return &Engine{
		history:        e.history.Copy(),
		locked:         e.locked,
		showAll:        e.showAll,
		showFiles:      e.showFiles,
		reserved:       e.reserved,
		hiddenSuffixes: e.hiddenSuffixes,
		promote:        e.promote,
		resolve:        e.resolve,
		logger:         e.logger,
	}
}

// openableNodes returns the node names the current source reports as
// openable. Recomputed on every listing since it depends on the runtime type
// of the current position.
func (e *Engine) openableNodes() []string {
	opener, ok := e.history.Current().(NodeOpener)
	if !ok {
		return nil
	}
	var out []string
	for _, name := range e.filteredNodes() {
		if opener.OpenableNode(name) {
			out = append(out, name)
		}
	}
	return out
}

func (e *Engine) filteredNodes() []string {
	nodes := e.history.Current().ListNodes()
	if e.showAll {
		return nodes
	}
	var out []string
	for _, n := range nodes {
		reserved := false
		for _, r := range e.reserved {
			if n == r {
				reserved = true
				break
			}
		}
		if !reserved {
			out = append(out, n)
		}
	}
	return out
}

// ListGroups returns the groups to display: the source's groups plus any
// nodes it reports as openable.
func (e *Engine) ListGroups() []string {
	groups := append([]string(nil), e.history.Current().ListGroups()...)
	return append(groups, e.openableNodes()...)
}

// ListNodes returns the nodes to display: the filtered nodes minus the ones
// reclassified as groups.
func (e *Engine) ListNodes() []string {
	openable := e.openableNodes()
	var out []string
	for _, n := range e.filteredNodes() {
		reclassified := false
		for _, o := range openable {
			if n == o {
				reclassified = true
				break
			}
		}
		if !reclassified {
			out = append(out, n)
		}
	}
	return out
}

// ListFiles returns the files to display, applying the hidden-suffix filter
// unless show-all is set. Sources without files yield nil.
func (e *Engine) ListFiles() []string {
	lister, ok := e.history.Current().(FileLister)
	if !ok {
		return nil
	}
	if e.showAll {
		return lister.ListFiles()
	}
	if !e.showFiles {
		return nil
	}
	var out []string
	for _, f := range lister.ListFiles() {
		hidden := false
		for _, suffix := range e.hiddenSuffixes {
			if strings.HasSuffix(f, suffix) {
				hidden = true
				break
			}
		}
		if !hidden {
			out = append(out, f)
		}
	}
	return out
}

// Path returns the current position's own path when it provides one.
func (e *Engine) Path() string {
	if p, ok := e.history.Current().(PathProvider); ok {
		return p.Path()
	}
	return ""
}

// RootPath returns the root the current source was opened at, when known.
func (e *Engine) RootPath() string {
	if p, ok := e.history.Current().(RootPathProvider); ok {
		return p.RootPath()
	}
	return ""
}
