package intervalset_test

import (
	"testing"

	"github.com/closedrange/intervalset"
	"github.com/closedrange/intervalset/internal/golden"
)

// TestGoldenScenarios replays each fixture under testdata/golden against a
// fresh IntervalSet[int] and compares its final rendering to the fixture's
// expectation. Set INTERVALSET_GOLDEN_REFRESH to a doublestar glob of
// scenario names to rewrite their "*.yaml.want" files instead.
func TestGoldenScenarios(t *testing.T) {
	c := golden.Corpus{
		Root:    "testdata/golden",
		Refresh: "INTERVALSET_GOLDEN_REFRESH",
	}
	c.Run(t, func(t *testing.T, s golden.Scenario) string {
		var set intervalset.IntervalSet[int]
		for _, op := range s.Ops {
			switch {
			case op.Insert != nil:
				if _, err := set.Insert(op.Insert[0], op.Insert[1]); err != nil {
					t.Fatalf("insert%v: %v", *op.Insert, err)
				}
			case op.Remove != nil:
				if _, err := set.Remove(op.Remove[0], op.Remove[1], nil, nil); err != nil {
					t.Fatalf("remove%v: %v", *op.Remove, err)
				}
			default:
				t.Fatalf("scenario %q: op with neither insert nor remove set", s.Name)
			}
		}
		return set.String()
	})
}
