package annotation

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Track is one labeled segment. Several tracks may share a segment.
type Track struct {
	Segment Segment `json:"segment"`
	Track   string  `json:"track"`
	Label   string  `json:"label"`
}

// Annotation maps segments to speaker labels for one uri.
type Annotation struct {
	URI      string
	Modality string
	tracks   []Track
}

// New returns an empty annotation.
func New(uri, modality string) *Annotation {
	return &Annotation{URI: uri, Modality: modality}
}

// Add labels segment s with label. Tracks on the same segment are numbered
// in insertion order.
func (a *Annotation) Add(s Segment, label string) {
	n := 0
	for _, tr := range a.tracks {
		if tr.Segment == s {
			n++
		}
	}
	tr := Track{Segment: s, Track: strconv.Itoa(n), Label: label}
	i := sort.Search(len(a.tracks), func(i int) bool { return less(s, a.tracks[i].Segment) })
	a.tracks = append(a.tracks, Track{})
	copy(a.tracks[i+1:], a.tracks[i:])
	a.tracks[i] = tr
}

// Tracks returns a copy of the tracks in chronological order.
func (a *Annotation) Tracks() []Track {
	out := make([]Track, len(a.tracks))
	copy(out, a.tracks)
	return out
}

// Len returns the number of tracks.
func (a *Annotation) Len() int {
	return len(a.tracks)
}

// Labels returns the sorted set of labels.
func (a *Annotation) Labels() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, tr := range a.tracks {
		if !seen[tr.Label] {
			seen[tr.Label] = true
			out = append(out, tr.Label)
		}
	}
	sort.Strings(out)
	return out
}

// Label returns the timeline of segments carrying label.
func (a *Annotation) Label(label string) *Timeline {
	t := &Timeline{URI: a.URI}
	for _, tr := range a.tracks {
		if tr.Label == label {
			t.Add(tr.Segment)
		}
	}
	return t
}

// Timeline returns every annotated segment.
func (a *Annotation) Timeline() *Timeline {
	t := &Timeline{URI: a.URI}
	for _, tr := range a.tracks {
		t.Add(tr.Segment)
	}
	return t
}

type annotationJSON struct {
	URI      string  `json:"uri"`
	Modality string  `json:"modality,omitempty"`
	Content  []Track `json:"content"`
}

func (a *Annotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(annotationJSON{URI: a.URI, Modality: a.Modality, Content: a.Tracks()})
}

func (a *Annotation) UnmarshalJSON(data []byte) error {
	var raw annotationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.URI, a.Modality, a.tracks = raw.URI, raw.Modality, nil
	for _, tr := range raw.Content {
		a.Add(tr.Segment, tr.Label)
	}
	return nil
}
