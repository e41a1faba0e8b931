package intervalset

import (
	"cmp"
	"fmt"
)

// EndpointAdjuster rounds an endpoint on a discrete domain. It backs the
// roundUp/roundDown parameters of [IntervalSet.Remove], which exist solely
// to disambiguate the degenerate touch-only cases that arise when a removed
// range's boundary lands exactly on an existing segment's boundary on a
// domain where "the next representable value" isn't simply K's successor.
//
// Returning a non-nil error (or panicking) signals that no adjustment could
// be computed. Remove catches either condition locally and substitutes the
// unadjusted endpoint, so removal still makes forward progress -- this is
// the CallerCallbackFailure case. [IdentityAdjuster] is the zero-cost
// default for callers that don't need discrete rounding.
type EndpointAdjuster[K cmp.Ordered] func(K) (K, error)

// IdentityAdjuster returns an EndpointAdjuster that returns its input
// unchanged. A nil EndpointAdjuster is also treated as identity by Remove,
// so this constructor exists mainly for call sites that want to be explicit.
func IdentityAdjuster[K cmp.Ordered]() EndpointAdjuster[K] {
	return func(k K) (K, error) { return k, nil }
}

// apply evaluates adj on point, falling back to point when adj is nil,
// returns an error, or panics.
func (adj EndpointAdjuster[K]) apply(point K) K {
	if adj == nil {
		return point
	}
	out, err := invokeAdjuster(adj, point)
	if err != nil {
		// Constructed for documentation purposes only: a caller callback
		// failure is caught locally and never surfaced, so the error value
		// is discarded here rather than returned.
		_ = CallerCallbackFailureError{Endpoint: point, Cause: err}
		return point
	}
	return out
}

// invokeAdjuster calls adj, converting a panic into an error so that apply
// has a single failure path to handle.
func invokeAdjuster[K cmp.Ordered](adj EndpointAdjuster[K], point K) (result K, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("endpoint adjuster panicked: %v", r)
		}
	}()
	return adj(point)
}
