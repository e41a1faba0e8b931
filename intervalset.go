// Package intervalset implements an interval set over an ordered domain: a
// container that maintains a sorted collection of non-overlapping closed
// intervals (segments), supporting union (Insert) and difference (Remove)
// edits that coalesce, trim, split, or delete existing segments as needed.
//
// The zero value of [IntervalSet] is an empty, ready-to-use set -- there is
// no constructor to call. Auditing (see [AuditLog]) defaults to off and
// must be turned on explicitly with [IntervalSet.SetAuditing].
package intervalset

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/tidwall/btree"

	"github.com/closedrange/intervalset/internal/classify"
	"github.com/closedrange/intervalset/internal/scan"
)

// IntervalSet is an ordered collection of non-overlapping [Segment] values
// over key type K, keyed internally by each segment's Start. It is not
// thread-safe: every mutating call assumes a single owning goroutine (see
// [Debug] for an optional development-time check of that assumption).
//
// The zero value is an empty set ready to use.
type IntervalSet[K cmp.Ordered] struct {
	tree btree.Map[K, Segment[K]]

	coveredStart, coveredEnd K
	nonEmpty                 bool

	auditing bool
	owner    ownerGuard
}

// SetAuditing turns the audit log on or off for subsequent Insert/Remove
// calls. It does not affect logs already returned by earlier calls.
func (s *IntervalSet[K]) SetAuditing(on bool) {
	s.auditing = on
}

// Auditing reports whether auditing is currently enabled.
func (s *IntervalSet[K]) Auditing() bool {
	return s.auditing
}

// Count returns the number of stored segments.
func (s *IntervalSet[K]) Count() int {
	return s.tree.Len()
}

// CoveredStart returns the smallest Start among stored segments, or K's zero
// value if the set is empty.
func (s *IntervalSet[K]) CoveredStart() K {
	return s.coveredStart
}

// CoveredEnd returns the largest End among stored segments, or K's zero
// value if the set is empty.
func (s *IntervalSet[K]) CoveredEnd() K {
	return s.coveredEnd
}

// Segments returns a read-only snapshot of the stored segments in ascending
// Start order. The returned slice is owned by the caller.
func (s *IntervalSet[K]) Segments() []Segment[K] {
	out := make([]Segment[K], 0, s.tree.Len())
	s.tree.Scan(func(_ K, seg Segment[K]) bool {
		out = append(out, seg)
		return true
	})
	return out
}

// items adapts the backing tree into the (start, end) sequence the scan
// package walks, without exposing Segment to it.
func (s *IntervalSet[K]) items() iter.Seq2[K, K] {
	return func(yield func(K, K) bool) {
		s.tree.Scan(func(start K, seg Segment[K]) bool {
			return yield(start, seg.End)
		})
	}
}

// scanAffected runs the OverlapScanner over the current storage for the
// range [a, b], translating an internal classify error into a panic, since
// that error can only mean an invariant of this package was already broken.
func (s *IntervalSet[K]) scanAffected(a, b K) []scan.Match[K] {
	matches, err := scan.Scan(s.items(), a, b, s.coveredStart, s.coveredEnd, s.nonEmpty)
	if err != nil {
		panic(InternalInvariantViolationError{Detail: err.Error()})
	}
	return matches
}

func (s *IntervalSet[K]) setSegment(seg Segment[K]) {
	s.tree.Set(seg.Start, seg)
}

func (s *IntervalSet[K]) deleteSegment(seg Segment[K]) {
	s.tree.Delete(seg.Start)
}

// recomputeBounds restores the CoveredStart/CoveredEnd aggregate. Because
// stored segments are pairwise disjoint and sorted by Start, their Ends are
// also strictly increasing, so the minimum Start and maximum End are just
// the first and last entries in the tree -- no scan required.
func (s *IntervalSet[K]) recomputeBounds() {
	if s.tree.Len() == 0 {
		var zero K
		s.coveredStart, s.coveredEnd = zero, zero
		s.nonEmpty = false
		return
	}

	it := s.tree.Iter()
	it.First()
	s.coveredStart = it.Key()
	it.Last()
	s.coveredEnd = it.Value().End
	s.nonEmpty = true
}

// Clear removes every segment and resets the aggregate bounds.
func (s *IntervalSet[K]) Clear() {
	s.owner.check()
	s.tree.Clear()
	var zero K
	s.coveredStart, s.coveredEnd = zero, zero
	s.nonEmpty = false
}

// IsIncluded reports whether point lies within the aggregate bounds and is
// contained by some stored segment.
func (s *IntervalSet[K]) IsIncluded(point K) bool {
	if !s.nonEmpty || point < s.coveredStart || point > s.coveredEnd {
		return false
	}
	found := false
	s.tree.Scan(func(_ K, seg Segment[K]) bool {
		if seg.Contains(point) {
			found = true
			return false
		}
		return true
	})
	return found
}

// IsIncludedFunc reports whether any stored segment satisfies pred, which
// is evaluated in an unspecified order and must be pure.
//
// point is accepted for symmetry with [IntervalSet.IsIncluded] but is not
// itself consulted; only pred decides matches (see DESIGN.md for why this
// surface was kept as-is). Callers that want point-aware filtering should
// close over it when building pred instead.
func (s *IntervalSet[K]) IsIncludedFunc(point K, pred func(Segment[K]) bool) bool {
	found := false
	s.tree.Scan(func(_ K, seg Segment[K]) bool {
		if pred(seg) {
			found = true
			return false
		}
		return true
	})
	return found
}

// Clone returns an independent IntervalSet containing the same segments.
// Auditing is reset to disabled on the clone regardless of the receiver's
// setting.
func (s *IntervalSet[K]) Clone() *IntervalSet[K] {
	clone := &IntervalSet[K]{
		coveredStart: s.coveredStart,
		coveredEnd:   s.coveredEnd,
		nonEmpty:     s.nonEmpty,
	}
	s.tree.Scan(func(start K, seg Segment[K]) bool {
		clone.tree.Set(start, seg)
		return true
	})
	return clone
}

// Insert edits the set so that it represents the union of its previous
// content with the closed segment [a, b]. Every segment that intersects or
// abuts [a, b] is coalesced into it, leaving at most one new segment in
// their place. Returns an [InvalidRangeError] if a > b; otherwise Insert
// always succeeds.
func (s *IntervalSet[K]) Insert(a, b K) (AuditLog[K], error) {
	s.owner.check()
	if a > b {
		return AuditLog[K]{}, InvalidRangeError{Start: a, End: b}
	}

	audit := newAuditBuilder[K](s.auditing)
	matches := s.scanAffected(a, b)

	newStart, newEnd := a, b
	for _, m := range matches {
		seg := Segment[K]{Start: m.Item.Start, End: m.Item.End}
		switch m.Tag {
		case classify.Full:
			// The inserted range is already subsumed by seg: no changes.
			return audit.build(), nil

		case classify.Overlap:
			s.deleteSegment(seg)
			audit.record(&seg, nil)

		case classify.Start, classify.StartIncluded:
			newStart = seg.Start
			s.deleteSegment(seg)
			audit.record(&seg, nil)

		case classify.End, classify.EndIncluded:
			newEnd = seg.End
			s.deleteSegment(seg)
			audit.record(&seg, nil)

		default:
			panic(InternalInvariantViolationError{
				Detail: fmt.Sprintf("insert: scanner produced unexpected tag %v for %v", m.Tag, seg),
			})
		}
	}

	merged := Segment[K]{Start: newStart, End: newEnd}
	s.setSegment(merged)
	audit.record(nil, &merged)
	s.recomputeBounds()
	return audit.build(), nil
}

// Remove edits the set so that it represents the set difference of its
// previous content and the closed segment [a, b]. Existing segments may be
// deleted, trimmed at either end, or split into two.
//
// roundUp and roundDown disambiguate the degenerate endpoint-touch cases on
// discrete domains; pass [IdentityAdjuster] (or nil) when no such
// disambiguation is needed. Each is evaluated at most once per call, on b
// and a respectively. Returns an [InvalidRangeError] if a > b; otherwise
// Remove is total.
func (s *IntervalSet[K]) Remove(a, b K, roundUp, roundDown EndpointAdjuster[K]) (AuditLog[K], error) {
	s.owner.check()
	if a > b {
		return AuditLog[K]{}, InvalidRangeError{Start: a, End: b}
	}

	audit := newAuditBuilder[K](s.auditing)
	matches := s.scanAffected(a, b)
	if len(matches) == 0 {
		return audit.build(), nil
	}

	up := roundUp.apply(b)
	down := roundDown.apply(a)

	var split *Segment[K]
	for _, m := range matches {
		seg := Segment[K]{Start: m.Item.Start, End: m.Item.End}
		switch m.Tag {
		case classify.Overlap:
			s.deleteSegment(seg)
			audit.record(&seg, nil)

		case classify.Start, classify.StartIncluded:
			// The gate below (seg.Start <= down) is redundant under
			// identity rounding -- down == a and seg.Start <= a always
			// holds here -- but a custom roundDown can push down below
			// seg.Start, in which case the trim is skipped rather than
			// extending the segment past where it already starts.
			if seg.Start <= down {
				trimmed := Segment[K]{Start: seg.Start, End: down}
				s.setSegment(trimmed)
				audit.record(&seg, &trimmed)
			}

		case classify.End, classify.EndIncluded:
			if up <= seg.End {
				s.deleteSegment(seg)
				moved := Segment[K]{Start: up, End: seg.End}
				s.setSegment(moved)
				audit.record(&seg, &moved)
			}

		case classify.Full:
			// Two independent sub-actions on the one enclosing segment.
			// The right half is only scheduled here; it's written to
			// storage after the loop, once the left half's in-place
			// mutation below is done, because its key (up) is guaranteed
			// greater than seg.Start and so can't collide with it.
			// When the kept halves [seg.Start, down] and [up, seg.End]
			// would touch or overlap (e.g. a single-point removal), their
			// union is seg itself, so seg is left unchanged.
			if up <= down {
				break
			}
			if seg.End > b && up <= seg.End {
				right := Segment[K]{Start: up, End: seg.End}
				split = &right
				audit.record(nil, &right)
			}
			if seg.Start <= down {
				trimmed := Segment[K]{Start: seg.Start, End: down}
				s.setSegment(trimmed)
				audit.record(&seg, &trimmed)
			}

		default:
			panic(InternalInvariantViolationError{
				Detail: fmt.Sprintf("remove: scanner produced unexpected tag %v for %v", m.Tag, seg),
			})
		}
	}

	if split != nil {
		s.setSegment(*split)
	}
	s.recomputeBounds()
	return audit.build(), nil
}
