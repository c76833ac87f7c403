// Package annotation holds the time-based objects used to describe
// diarization ground truth: segments, timelines, labeled annotations and
// frame-level features laid over a sliding window.
package annotation

import (
	"fmt"
	"sort"
)

// Segment is a [Start, End] time span in seconds.
type Segment struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Duration returns End-Start, or 0 for an empty segment.
func (s Segment) Duration() float64 {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty reports whether the segment has no extent.
func (s Segment) IsEmpty() bool {
	return s.End <= s.Start
}

// Overlaps reports whether the two segments share a non-empty span.
func (s Segment) Overlaps(o Segment) bool {
	return s.Start < o.End && o.Start < s.End
}

func (s Segment) String() string {
	return fmt.Sprintf("[%.3f --> %.3f]", s.Start, s.End)
}

func less(a, b Segment) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.End < b.End
}

// Timeline is an ordered set of segments belonging to one uri.
type Timeline struct {
	URI      string    `json:"uri" yaml:"uri"`
	Segments []Segment `json:"content" yaml:"content"`
}

// NewTimeline returns a timeline holding segs sorted by start time.
// Empty segments are dropped.
func NewTimeline(uri string, segs ...Segment) *Timeline {
	t := &Timeline{URI: uri}
	for _, s := range segs {
		t.Add(s)
	}
	return t
}

// Add inserts s in order. Empty segments are ignored.
func (t *Timeline) Add(s Segment) {
	if s.IsEmpty() {
		return
	}
	i := sort.Search(len(t.Segments), func(i int) bool { return less(s, t.Segments[i]) })
	t.Segments = append(t.Segments, Segment{})
	copy(t.Segments[i+1:], t.Segments[i:])
	t.Segments[i] = s
}

// Len returns the number of segments.
func (t *Timeline) Len() int {
	return len(t.Segments)
}

// Extent returns the smallest segment covering the whole timeline.
func (t *Timeline) Extent() Segment {
	if len(t.Segments) == 0 {
		return Segment{}
	}
	ext := Segment{Start: t.Segments[0].Start, End: t.Segments[0].End}
	for _, s := range t.Segments[1:] {
		if s.End > ext.End {
			ext.End = s.End
		}
	}
	return ext
}

// Support merges overlapping or touching segments.
func (t *Timeline) Support() *Timeline {
	out := &Timeline{URI: t.URI}
	for _, s := range t.Segments {
		n := len(out.Segments)
		if n > 0 && s.Start <= out.Segments[n-1].End {
			if s.End > out.Segments[n-1].End {
				out.Segments[n-1].End = s.End
			}
			continue
		}
		out.Segments = append(out.Segments, s)
	}
	return out
}

// Duration returns the total duration covered by the timeline, counting
// overlapping regions once.
func (t *Timeline) Duration() float64 {
	total := 0.0
	for _, s := range t.Support().Segments {
		total += s.Duration()
	}
	return total
}
