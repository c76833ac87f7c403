package annotation

import (
	"fmt"
	"math"
)

// SlidingWindow maps frame indices onto time: frame i covers
// [Start+i*Step, Start+i*Step+Duration].
type SlidingWindow struct {
	Duration float64 `json:"duration" yaml:"duration"`
	Step     float64 `json:"step" yaml:"step"`
	Start    float64 `json:"start" yaml:"start"`
}

// Frame returns the segment covered by frame i.
func (w SlidingWindow) Frame(i int) Segment {
	start := w.Start + float64(i)*w.Step
	return Segment{Start: start, End: start + w.Duration}
}

// Center returns the middle of frame i.
func (w SlidingWindow) Center(i int) float64 {
	return w.Start + float64(i)*w.Step + w.Duration/2
}

// ClosestFrame returns the index of the frame whose center is nearest t.
func (w SlidingWindow) ClosestFrame(t float64) int {
	return int(math.Round((t - w.Start - w.Duration/2) / w.Step))
}

// SlidingWindowFeature is a (frames × dimension) matrix of values laid over
// a sliding window.
type SlidingWindowFeature struct {
	Data   [][]float64   `json:"data"`
	Window SlidingWindow `json:"sliding_window"`
}

// NewSlidingWindowFeature reshapes values to one single-value row per frame.
func NewSlidingWindowFeature(values []float64, window SlidingWindow) *SlidingWindowFeature {
	data := make([][]float64, len(values))
	for i, v := range values {
		data[i] = []float64{v}
	}
	return &SlidingWindowFeature{Data: data, Window: window}
}

// NumFrames returns the number of frames.
func (f *SlidingWindowFeature) NumFrames() int {
	return len(f.Data)
}

// Dimension returns the width of each frame, 0 when there are no frames.
func (f *SlidingWindowFeature) Dimension() int {
	if len(f.Data) == 0 {
		return 0
	}
	return len(f.Data[0])
}

// Extent returns the time span covered by all frames.
func (f *SlidingWindowFeature) Extent() Segment {
	if len(f.Data) == 0 {
		return Segment{Start: f.Window.Start, End: f.Window.Start}
	}
	return Segment{Start: f.Window.Start, End: f.Window.Frame(len(f.Data) - 1).End}
}

// At returns the value of frame i in dimension d.
func (f *SlidingWindowFeature) At(i, d int) (float64, error) {
	if i < 0 || i >= len(f.Data) || d < 0 || d >= len(f.Data[i]) {
		return 0, fmt.Errorf("index (%d, %d) out of range for %d×%d feature", i, d, f.NumFrames(), f.Dimension())
	}
	return f.Data[i][d], nil
}

// Column returns dimension d across all frames.
func (f *SlidingWindowFeature) Column(d int) []float64 {
	out := make([]float64, 0, len(f.Data))
	for _, row := range f.Data {
		if d < len(row) {
			out = append(out, row[d])
		}
	}
	return out
}
