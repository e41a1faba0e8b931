package intervalset

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// DebugTable renders segs as a simple two-column "start | end" table, for
// use in test failure output and manual debugging. Column widths are
// computed with display-width accounting (via uniseg) rather than byte or
// rune counts, so that alignment survives endpoint types whose String()
// produces multi-cell or zero-width output.
func DebugTable[K cmp.Ordered](segs []Segment[K]) string {
	type row struct{ start, end string }

	rows := make([]row, len(segs))
	startWidth, endWidth := uniseg.StringWidth("start"), uniseg.StringWidth("end")
	for i, seg := range segs {
		rows[i] = row{fmt.Sprint(seg.Start), fmt.Sprint(seg.End)}
		if w := uniseg.StringWidth(rows[i].start); w > startWidth {
			startWidth = w
		}
		if w := uniseg.StringWidth(rows[i].end); w > endWidth {
			endWidth = w
		}
	}

	var b strings.Builder
	writeRow := func(start, end string) {
		b.WriteString(start)
		b.WriteString(strings.Repeat(" ", startWidth-uniseg.StringWidth(start)))
		b.WriteString(" | ")
		b.WriteString(end)
		b.WriteString(strings.Repeat(" ", endWidth-uniseg.StringWidth(end)))
		b.WriteByte('\n')
	}

	writeRow("start", "end")
	b.WriteString(strings.Repeat("-", startWidth+endWidth+3))
	b.WriteByte('\n')
	for _, r := range rows {
		writeRow(r.start, r.end)
	}
	return b.String()
}

// String renders s as a brace-delimited, comma-separated list of its
// segments in ascending order, e.g. "{(1, 2), (3, 4)}".
func (s *IntervalSet[K]) String() string {
	segs := s.Segments()
	parts := make([]string, len(segs))
	for i, seg := range segs {
		parts[i] = seg.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
