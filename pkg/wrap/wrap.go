// Package wrap is the content-adaptation layer: given an arbitrary value
// fetched from a Browsable, it decides how the value should be represented
// for rendering and whether it can itself become a new browsable position.
// Resolution is pure with respect to navigation state; it inspects a single
// value and returns a description.
package wrap

import (
	"errors"
	"fmt"

	"github.com/mattsolo1/grove-browse/pkg/browse"
)

// Kind tags the representation chosen for a value.
type Kind string

const (
	KindPlain     Kind = "plain"
	KindArray     Kind = "array"
	KindRecord    Kind = "record"
	KindStructure Kind = "structure"
	KindCurve     Kind = "curve"
)

// ErrConfiguration reports an invalid wrapper configuration, e.g. selecting
// other than exactly two plot dimensions. Non-fatal; the caller reports it
// and keeps the wrapper.
var ErrConfiguration = errors.New("invalid wrapper configuration")

// Wrapper is the tagged descriptor handed to the rendering layer. Payload is
// the kind-specific view (*ArrayView, *RecordView, *StructureView,
// *CurveView) or, for KindPlain, the value itself.
type Wrapper struct {
	Kind    Kind
	Payload any
	Origin  browse.Browsable
	RelPath string
}

// ResolveFunc is a custom resolution arm. It returns false to pass the value
// on to the built-in resolution.
type ResolveFunc func(value any, origin browse.Browsable, relPath string) (*Wrapper, bool)

var registry []ResolveFunc

// Register adds a custom resolution arm. Arms run before the built-in
// switch, most recently registered first.
func Register(fn ResolveFunc) {
	registry = append(registry, fn)
}

// Resolve maps a value onto a Wrapper. It never fails; a kind that cannot be
// resolved falls through to KindPlain with the value passed through
// unchanged.
func Resolve(value any, origin browse.Browsable, relPath string) *Wrapper {
	for i := len(registry) - 1; i >= 0; i-- {
		if w, ok := registry[i](value, origin, relPath); ok {
			return w
		}
	}
	switch v := value.(type) {
	case *Wrapper:
		return v
	case Structure:
		return &Wrapper{Kind: KindStructure, Payload: NewStructureView(v), Origin: origin, RelPath: relPath}
	case CurveFit:
		return &Wrapper{Kind: KindCurve, Payload: NewCurveView(v), Origin: origin, RelPath: relPath}
	case *Array:
		return &Wrapper{Kind: KindArray, Payload: NewArrayView(v), Origin: origin, RelPath: relPath}
	case FileRef:
		return &Wrapper{Kind: KindRecord, Payload: NewRecordView(v), Origin: origin, RelPath: relPath}
	default:
		return &Wrapper{Kind: KindPlain, Payload: value, Origin: origin, RelPath: relPath}
	}
}

// Resolver adapts Resolve to the engine's injection point.
func Resolver() browse.Resolver {
	return func(value any, origin browse.Browsable, relPath string) any {
		return Resolve(value, origin, relPath)
	}
}

// Promote attempts to open a fetched leaf value as a browsable position: a
// value that already is a Browsable is taken as-is, a FileRef is loaded and
// its payload used when browsable. Anything else is left to the engine,
// which keeps the old position.
func Promote(value any, origin browse.Browsable, relPath string) (browse.Browsable, error) {
	switch v := value.(type) {
	case browse.Browsable:
		return v, nil
	case FileRef:
		data, err := v.Load()
		if err != nil {
			return nil, fmt.Errorf("%q: %w: %v", relPath, browse.ErrWrapFailed, err)
		}
		if b, ok := data.(browse.Browsable); ok {
			return b, nil
		}
		return nil, fmt.Errorf("%q: %w", relPath, browse.ErrWrapFailed)
	}
	return nil, nil
}
