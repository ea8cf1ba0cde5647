package browse

// History is the append-only, truncate-on-branch ledger of visited
// positions. Entries are never mutated after recording; only the tail past
// the cursor is discarded when navigation branches off a mid-history point.
type History struct {
	entries []Browsable
	cursor  int
}

// NewHistory returns a ledger seeded with the starting position.
func NewHistory(root Browsable) *History {
	return &History{entries: []Browsable{root}}
}

// Record drops everything after the cursor, appends the entry and moves the
// cursor onto it.
func (h *History) Record(entry Browsable) {
	h.entries = append(h.entries[:h.cursor+1], entry)
	h.cursor = len(h.entries) - 1
}

// Back moves the cursor one entry towards the start.
func (h *History) Back() (Browsable, error) {
	if h.cursor == 0 {
		return nil, ErrAtStart
	}
	h.cursor--
	return h.entries[h.cursor], nil
}

// Forward moves the cursor one entry towards the end.
func (h *History) Forward() (Browsable, error) {
	if h.cursor == len(h.entries)-1 {
		return nil, ErrAtEnd
	}
	h.cursor++
	return h.entries[h.cursor], nil
}

// Jump moves the cursor to an absolute index.
func (h *History) Jump(idx int) (Browsable, error) {
	if idx < 0 || idx >= len(h.entries) {
		return nil, ErrOutOfRange
	}
	h.cursor = idx
	return h.entries[h.cursor], nil
}

// Current returns the entry under the cursor.
func (h *History) Current() Browsable {
	return h.entries[h.cursor]
}

// Cursor returns the current index.
func (h *History) Cursor() int {
	return h.cursor
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	return len(h.entries)
}

// CanBack reports whether Back would succeed.
func (h *History) CanBack() bool {
	return h.cursor > 0
}

// CanForward reports whether Forward would succeed.
func (h *History) CanForward() bool {
	return h.cursor < len(h.entries)-1
}

// Copy returns an independent ledger holding the entries up to and including
// the cursor. The referenced Browsables are shared; the ledger is not.
func (h *History) Copy() *History {
	entries := make([]Browsable, h.cursor+1)
	copy(entries, h.entries[:h.cursor+1])
	return &History{entries: entries, cursor: h.cursor}
}
