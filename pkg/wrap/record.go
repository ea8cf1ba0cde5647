package wrap

import "github.com/mattsolo1/grove-browse/pkg/browse"

// FileRef is a metadata-bearing reference to stored data. Metadata is cheap;
// the payload behind Load may be expensive and is only fetched on demand.
type FileRef interface {
	Name() string
	Metadata() map[string]any
	Load() (any, error)
}

// RecordOption configures a RecordView.
type RecordOption func(*RecordView)

// WithDescent opts into automatic descent: when the lazily loaded data turns
// out to be browsable, cb is invoked so the navigation engine can offer to
// enter it. Without this option the caller gets a manual affordance via
// Browsable instead.
func WithDescent(cb func(browse.Browsable)) RecordOption {
	return func(r *RecordView) { r.descend = cb }
}

// RecordView exposes a record's metadata immediately and its data lazily.
// The loaded data is cached for the lifetime of the view.
type RecordView struct {
	ref     FileRef
	data    any
	loaded  bool
	descend func(browse.Browsable)
}

// NewRecordView wraps a FileRef.
func NewRecordView(ref FileRef, opts ...RecordOption) *RecordView {
	r := &RecordView{ref: ref}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the record's name.
func (r *RecordView) Name() string { return r.ref.Name() }

// Metadata returns the metadata view. Never triggers a data fetch.
func (r *RecordView) Metadata() map[string]any { return r.ref.Metadata() }

// Loaded reports whether the data has been fetched.
func (r *RecordView) Loaded() bool { return r.loaded }

// Data returns the record's payload, fetching it on first use. When the
// payload is browsable and descent was opted into, the callback fires once,
// on that first fetch.
func (r *RecordView) Data() (any, error) {
	if !r.loaded {
		data, err := r.ref.Load()
		if err != nil {
			return nil, err
		}
		r.data = data
		r.loaded = true
		if b, ok := data.(browse.Browsable); ok && r.descend != nil {
			r.descend(b)
		}
	}
	return r.data, nil
}

// Browsable returns the loaded payload as a Browsable, for the manual
// "descend into this" affordance. Only meaningful after Data.
func (r *RecordView) Browsable() (browse.Browsable, bool) {
	if !r.loaded {
		return nil, false
	}
	b, ok := r.data.(browse.Browsable)
	return b, ok
}
