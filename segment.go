package intervalset

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Segment is an immutable closed interval [Start, End] over an ordered key
// type K. The zero value is not meaningful on its own; construct one with
// [NewSegment].
//
// Segments are value objects: copying one by assignment yields an
// independent copy, and two segments are equal iff both endpoints are equal.
type Segment[K cmp.Ordered] struct {
	Start, End K
}

// NewSegment builds a Segment, returning an [InvalidRangeError] if
// start > end.
func NewSegment[K cmp.Ordered](start, end K) (Segment[K], error) {
	if start > end {
		return Segment[K]{}, InvalidRangeError{Start: start, End: end}
	}
	return Segment[K]{Start: start, End: end}, nil
}

// MustSegment is like [NewSegment] but panics on an invalid range. It is
// intended for constructing segments from literals known to be valid.
func MustSegment[K cmp.Ordered](start, end K) Segment[K] {
	s, err := NewSegment(start, end)
	if err != nil {
		panic(err)
	}
	return s
}

// Contains reports whether point lies within the closed interval.
func (s Segment[K]) Contains(point K) bool {
	return s.Start <= point && point <= s.End
}

// ContainsSegment reports whether other is entirely contained within s.
func (s Segment[K]) ContainsSegment(other Segment[K]) bool {
	return s.Contains(other.Start) && s.Contains(other.End)
}

// Overlaps reports whether s and other intersect, where the intersection
// test is inclusive of both endpoints.
func (s Segment[K]) Overlaps(other Segment[K]) bool {
	return s.Contains(other.Start) || s.Contains(other.End) || other.ContainsSegment(s)
}

// Clone returns a structurally equal, independent copy of s. Since Segment
// holds only value-typed endpoints, this is equivalent to a plain copy; the
// method exists so callers that hold a Segment via an interface, or that are
// generic over "cloneable" value types, don't need a type switch.
func (s Segment[K]) Clone() Segment[K] {
	return s
}

// Equal reports whether s and other have identical endpoints.
func (s Segment[K]) Equal(other Segment[K]) bool {
	return s.Start == other.Start && s.End == other.End
}

// String renders the segment using the default "(start, end)" template.
func (s Segment[K]) String() string {
	return s.Render("({start}, {end})")
}

// Format implements [fmt.Formatter] so that a Segment can be used directly
// with the fmt verbs.
func (s Segment[K]) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('#') {
			fmt.Fprintf(f, "intervalset.Segment[%v, %v]", s.Start, s.End)
			return
		}
		fmt.Fprint(f, s.String())
	case 's', 'q':
		str := s.String()
		if verb == 'q' {
			str = strconv.Quote(str)
		}
		fmt.Fprint(f, str)
	default:
		fmt.Fprintf(f, "%%!%c(intervalset.Segment)", verb)
	}
}

// Render substitutes the endpoints of s into template. The explicit
// placeholders "{start}" and "{end}" are always recognized. If template
// contains neither brace placeholder, Render falls back to substituting the
// bare letters 'a' and 'b' wherever they occur, for compatibility with the
// legacy single-letter template convention older call sites use -- callers
// should prefer the brace form, since endpoint text can itself contain 'a'
// or 'b' and corrupt a bare substitution.
func (s Segment[K]) Render(template string) string {
	start := fmt.Sprint(s.Start)
	end := fmt.Sprint(s.End)

	if strings.Contains(template, "{start}") || strings.Contains(template, "{end}") {
		out := strings.ReplaceAll(template, "{start}", start)
		out = strings.ReplaceAll(out, "{end}", end)
		return out
	}

	var b strings.Builder
	for _, r := range template {
		switch r {
		case 'a':
			b.WriteString(start)
		case 'b':
			b.WriteString(end)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
