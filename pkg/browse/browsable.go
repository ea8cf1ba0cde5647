package browse

import "errors"

// Browsable is the capability contract for a tree-shaped data source. A
// source exposes its container children (groups), its terminal children
// (nodes) and indexed access by name. Anything satisfying this interface can
// be driven by an Engine.
type Browsable interface {
	// ListGroups returns the names of children that are themselves
	// browsable containers, in display order.
	ListGroups() []string

	// ListNodes returns the names of terminal children, in display order.
	ListNodes() []string

	// Get fetches a child by name. The error wraps ErrNotFound when the
	// name is absent.
	Get(name string) (any, error)
}

// FileLister is an optional capability for sources that carry a third child
// category (plain files on disk) next to groups and nodes.
type FileLister interface {
	ListFiles() []string
}

// PathProvider is an optional capability exposing the source's position in
// its own addressing scheme, used for breadcrumb display.
type PathProvider interface {
	Path() string
}

// RootPathProvider exposes the root the source was opened at.
type RootPathProvider interface {
	RootPath() string
}

// NodeOpener is an optional capability reporting which node children can be
// opened as groups even though the source lists them as nodes. The rule is
// owned by the data source, not the engine.
type NodeOpener interface {
	OpenableNode(name string) bool
}

// Setter is an optional capability for sources that accept write-back of a
// node value.
type Setter interface {
	Set(name string, value any) error
}

// Promoter turns a fetched leaf value into a Browsable position, or reports
// that it cannot. A nil Browsable with a nil error means "not promotable,
// not an error" and leaves entry handling to the engine.
type Promoter func(value any, origin Browsable, relPath string) (Browsable, error)

// Resolver adapts a selected value into whatever descriptor the rendering
// layer consumes. The engine never inspects the result.
type Resolver func(value any, origin Browsable, relPath string) any

var (
	// ErrNotFound reports a name absent from the current Browsable.
	ErrNotFound = errors.New("not found")

	// ErrLocked reports a position-changing operation while navigation is
	// locked.
	ErrLocked = errors.New("navigation is locked")

	// ErrAtStart reports a Back at the beginning of history.
	ErrAtStart = errors.New("already at start of history")

	// ErrAtEnd reports a Forward at the end of history.
	ErrAtEnd = errors.New("already at end of history")

	// ErrOutOfRange reports a Jump outside the recorded history.
	ErrOutOfRange = errors.New("history index out of range")

	// ErrBusy reports an operation arriving while another one is still
	// being processed.
	ErrBusy = errors.New("browser is busy")

	// ErrWrapFailed reports a value that could not be opened as a browsable
	// group. Recoverable: the position stays where it was.
	ErrWrapFailed = errors.New("cannot open value as a group")

	// ErrTypeMismatch reports a value offered as the new position that does
	// not satisfy the Browsable contract. Unlike the navigation errors this
	// indicates a programming error in the caller.
	ErrTypeMismatch = errors.New("value does not satisfy the Browsable contract")
)
