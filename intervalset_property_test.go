package intervalset_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/closedrange/intervalset"
)

// randomRange returns a well-formed, small closed range so that insert and
// remove calls exercise plenty of overlap with one another.
func randomRange(r *rand.Rand) (int, int) {
	a := r.Intn(40) - 10
	width := r.Intn(8)
	return a, a + width
}

// assertNonOverlapping checks P1 and P2: segments are sorted by Start and
// pairwise disjoint with no zero-gap unless they were coalesced by Insert
// (which this package guarantees by construction, since Insert always
// merges touching segments into one).
func assertNonOverlapping(t *testing.T, segs []intervalset.Segment[int]) {
	t.Helper()
	for i := 1; i < len(segs); i++ {
		assert.Less(t, segs[i-1].Start, segs[i].Start, "P2: segments must be sorted by Start")
		assert.Less(t, segs[i-1].End, segs[i].Start, "P1: stored segments must be strictly disjoint")
	}
}

// assertAggregateBounds checks P3.
func assertAggregateBounds(t *testing.T, s *intervalset.IntervalSet[int]) {
	t.Helper()
	segs := s.Segments()
	if len(segs) == 0 {
		assert.Equal(t, 0, s.CoveredStart())
		assert.Equal(t, 0, s.CoveredEnd())
		return
	}
	wantStart, wantEnd := segs[0].Start, segs[0].End
	for _, seg := range segs {
		wantStart = min(wantStart, seg.Start)
		wantEnd = max(wantEnd, seg.End)
	}
	assert.Equal(t, wantStart, s.CoveredStart())
	assert.Equal(t, wantEnd, s.CoveredEnd())
}

func TestPropertyInsertRemoveMaintainInvariants(t *testing.T) {
	t.Parallel()

	const scenarios = 64
	var g errgroup.Group
	for i := 0; i < scenarios; i++ {
		seed := int64(i)
		g.Go(func() error {
			r := rand.New(rand.NewSource(seed))
			var s intervalset.IntervalSet[int]
			s.SetAuditing(true)

			for op := 0; op < 50; op++ {
				a, b := randomRange(r)
				var err error
				if r.Intn(2) == 0 {
					_, err = s.Insert(a, b)
				} else {
					_, err = s.Remove(a, b, nil, nil)
				}
				if err != nil {
					return err
				}
				assertNonOverlapping(t, s.Segments())
				assertAggregateBounds(t, &s)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

// P4: inserting the same range twice is idempotent, and the second call's
// audit log describes zero net changes.
func TestPropertyInsertIdempotence(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		var s intervalset.IntervalSet[int]
		for i := 0; i < 5; i++ {
			a, b := randomRange(r)
			_, err := s.Insert(a, b)
			require.NoError(t, err)
		}

		a, b := randomRange(r)
		_, err := s.Insert(a, b)
		require.NoError(t, err)
		before := s.Segments()

		s.SetAuditing(true)
		log, err := s.Insert(a, b)
		require.NoError(t, err)

		assertEqualSegments(t, before, s.Segments())

		switch log.Len() {
		case 0:
			// The Full early-return case.
		case 2:
			// One delete of the old identical segment, one create of the
			// same content.
			assert.True(t, log.Entries()[0].IsDelete())
			assert.True(t, log.Entries()[1].IsCreate())
			assert.Equal(t, *log.Entries()[0].Before, *log.Entries()[1].After)
		default:
			t.Fatalf("unexpected audit length for idempotent insert: %d entries", log.Len())
		}
	}
}

// P5: inserting a range already enclosed by a stored segment is a no-op.
func TestPropertyInsertAbsorbedByEnclosingSegment(t *testing.T) {
	t.Parallel()
	var s intervalset.IntervalSet[int]
	_, err := s.Insert(-100, 100)
	require.NoError(t, err)

	r := rand.New(rand.NewSource(2))
	for trial := 0; trial < 200; trial++ {
		a, b := randomRange(r)
		s.SetAuditing(true)
		log, err := s.Insert(a, b)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Count())
		assert.Equal(t, intervalset.MustSegment(-100, 100), s.Segments()[0])
		assert.Equal(t, 0, log.Len())
	}
}

// P6: insert(r) then remove(r) with identity rounding restores the
// original content. Trials where r touches or overlaps an existing segment
// (so that insert(r) coalesces with it and remove(r) then trims it) are
// skipped; only r disjoint from every stored segment is checked.
func TestPropertyInsertRemoveCycleRestoresOriginal(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(3))

	for trial := 0; trial < 200; trial++ {
		var s intervalset.IntervalSet[int]
		for i := 0; i < 5; i++ {
			a, b := randomRange(r)
			_, err := s.Insert(a, b)
			require.NoError(t, err)
		}
		before := s.Segments()
		if !disjointFromAll(before, 1000, 1050) {
			continue
		}

		_, err := s.Insert(1000, 1050)
		require.NoError(t, err)
		_, err = s.Remove(1000, 1050, nil, nil)
		require.NoError(t, err)

		assertEqualSegments(t, before, s.Segments())
	}
}

// P7: after remove(r, id, id), no point strictly interior to r is included.
func TestPropertyRemoveClearsInterior(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(4))

	for trial := 0; trial < 200; trial++ {
		var s intervalset.IntervalSet[int]
		for i := 0; i < 5; i++ {
			a, b := randomRange(r)
			_, err := s.Insert(a, b)
			require.NoError(t, err)
		}

		a, b := randomRange(r)
		_, err := s.Remove(a, b, nil, nil)
		require.NoError(t, err)

		for p := a + 1; p < b; p++ {
			assert.False(t, s.IsIncluded(p), "point %d strictly inside removed range %d..%d", p, a, b)
		}
	}
}

// P8: mutating a clone never affects the original.
func TestPropertyCloneIndependence(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(5))

	for trial := 0; trial < 100; trial++ {
		var s intervalset.IntervalSet[int]
		for i := 0; i < 5; i++ {
			a, b := randomRange(r)
			_, err := s.Insert(a, b)
			require.NoError(t, err)
		}
		want := s.Segments()

		clone := s.Clone()
		a, b := randomRange(r)
		if r.Intn(2) == 0 {
			_, err := clone.Insert(a, b)
			require.NoError(t, err)
		} else {
			_, err := clone.Remove(a, b, nil, nil)
			require.NoError(t, err)
		}

		assertEqualSegments(t, want, s.Segments())
	}
}

func assertEqualSegments(t *testing.T, want, got []intervalset.Segment[int]) {
	t.Helper()
	diff(t, want, got)
}

func disjointFromAll(segs []intervalset.Segment[int], a, b int) bool {
	q := intervalset.MustSegment(a, b)
	for _, seg := range segs {
		if seg.Overlaps(q) {
			return false
		}
	}
	return true
}
