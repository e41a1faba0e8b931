// Package scan implements the OverlapScanner: it walks an ordered sequence
// of existing segments and yields, in order, every one that intersects a
// query range together with its geometric classification.
package scan

import (
	"cmp"
	"iter"

	"github.com/closedrange/intervalset/internal/classify"
)

// Item is a bare (start, end) pair, used so that this package has no
// dependency on the root intervalset package's Segment type.
type Item[K cmp.Ordered] struct {
	Start, End K
}

// Match pairs an Item that intersects the query range with its
// classification tag. Tag is never [classify.Out]: the scanner prunes those.
type Match[K cmp.Ordered] struct {
	Item Item[K]
	Tag  classify.Tag
}

// Scan walks items -- assumed to be sorted ascending by Start and pairwise
// non-overlapping, as an IntervalSet's storage always is -- and returns every
// item that intersects the closed query range [a, b], in ascending order.
//
// covered reports whether the owning set is non-empty; when false, or when
// the query range falls entirely outside [coveredStart, coveredEnd], Scan
// returns nil without walking items at all.
//
// Scan allocates a fresh result slice on every call and never mutates items.
func Scan[K cmp.Ordered](items iter.Seq2[K, K], a, b K, coveredStart, coveredEnd K, covered bool) ([]Match[K], error) {
	if !covered || b < coveredStart || a > coveredEnd {
		return nil, nil
	}

	var out []Match[K]
	for start, end := range items {
		if end < a {
			continue
		}
		if start > b {
			break
		}

		tag, err := classify.Classify(a, b, start, end)
		if err != nil {
			return nil, err
		}
		if tag == classify.Out {
			// classify.Classify should never say Out for an item that
			// passed the end < a / start > b prefilter above, but the
			// check costs nothing and keeps the invariant explicit.
			continue
		}
		out = append(out, Match[K]{Item: Item[K]{Start: start, End: end}, Tag: tag})
	}
	return out, nil
}
