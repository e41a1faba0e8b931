package intervalset

import "cmp"

// AuditEntry is a single segment-level state transition recorded during one
// call to [IntervalSet.Insert] or [IntervalSet.Remove]. Before and After are
// nil to encode, respectively: creation (Before nil, After set), deletion
// (Before set, After nil), or mutation (both set).
type AuditEntry[K cmp.Ordered] struct {
	Before, After *Segment[K]
}

// IsCreate reports whether this entry represents a new segment appearing.
func (e AuditEntry[K]) IsCreate() bool { return e.Before == nil && e.After != nil }

// IsDelete reports whether this entry represents a segment disappearing.
func (e AuditEntry[K]) IsDelete() bool { return e.Before != nil && e.After == nil }

// IsMutation reports whether this entry represents an existing segment being
// trimmed, moved, or otherwise replaced in place.
func (e AuditEntry[K]) IsMutation() bool { return e.Before != nil && e.After != nil }

// AuditLog is the append-only record of every [AuditEntry] produced by a
// single Insert or Remove call. An AuditLog that is not [AuditLog.Enabled]
// is guaranteed to have zero entries and to have cost nothing but a couple
// of words to construct: the zero value is an empty, disabled log.
type AuditLog[K cmp.Ordered] struct {
	enabled bool
	entries []AuditEntry[K]
}

// Enabled reports whether the IntervalSet that produced this log had
// auditing turned on when the call was made.
func (l AuditLog[K]) Enabled() bool { return l.enabled }

// Entries returns the recorded transitions in the order they occurred. It
// is nil when auditing was disabled.
func (l AuditLog[K]) Entries() []AuditEntry[K] { return l.entries }

// Len returns the number of recorded transitions.
func (l AuditLog[K]) Len() int { return len(l.entries) }

// auditBuilder accumulates AuditEntry values during a single Insert/Remove
// call, so that Insert/Remove read as a description of the algorithm rather
// than a description of the algorithm interleaved with logging concerns.
type auditBuilder[K cmp.Ordered] struct {
	enabled bool
	entries []AuditEntry[K]
}

func newAuditBuilder[K cmp.Ordered](enabled bool) *auditBuilder[K] {
	return &auditBuilder[K]{enabled: enabled}
}

// record appends a transition. before/after may be nil. Values are copied
// into fresh *Segment[K]s so that the snapshot is independent of any later
// mutation to the owning set and outlives subsequent edits. When disabled,
// record does nothing -- no copy, no allocation.
func (b *auditBuilder[K]) record(before, after *Segment[K]) {
	if !b.enabled {
		return
	}
	var entry AuditEntry[K]
	if before != nil {
		cp := *before
		entry.Before = &cp
	}
	if after != nil {
		cp := *after
		entry.After = &cp
	}
	b.entries = append(b.entries, entry)
}

func (b *auditBuilder[K]) build() AuditLog[K] {
	return AuditLog[K]{enabled: b.enabled, entries: b.entries}
}
