package intervalset

import (
	"fmt"

	"github.com/petermattis/goid"
)

// Debug enables the owner-goroutine guard on every [IntervalSet]. It is off
// by default: the guard exists to catch accidental concurrent mutation
// during development and testing, not to provide a correctness guarantee in
// production, where paying for a goroutine-id lookup on every mutating call
// would be wasted once a set is known to have a single owner.
//
// This is a package-level switch rather than a per-set option because it is
// meant to be flipped on for an entire test binary (e.g. in TestMain), the
// same way a race detector is enabled for a whole run rather than per value.
var Debug = false

// ownerGuard records which goroutine first mutated an IntervalSet and
// panics if a later mutating call arrives from a different one while Debug
// is on. It is not a concurrency primitive: IntervalSet remains
// single-owner and unsynchronized, and this guard cannot detect every race
// (in particular, plain reads are never checked), only some misuse from a
// second mutating caller.
type ownerGuard struct {
	id  int64
	set bool
}

func (g *ownerGuard) check() {
	if !Debug {
		return
	}
	cur := goid.Get()
	if !g.set {
		g.id = cur
		g.set = true
		return
	}
	if g.id != cur {
		panic(InternalInvariantViolationError{Detail: fmt.Sprintf(
			"IntervalSet mutated from goroutine %d, but is owned by goroutine %d; "+
				"IntervalSet requires single-owner access", cur, g.id)})
	}
}
