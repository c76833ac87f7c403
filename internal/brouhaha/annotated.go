package brouhaha

import (
	"fmt"
	"path/filepath"
	"strings"

	"brouhaha/internal/annotation"
	"brouhaha/internal/audioinfo"
)

// AnnotatedFunc returns the annotated extent of uri, or nil when unknown.
type AnnotatedFunc func(uri string) (*annotation.Timeline, error)

// AnnotatedStrategy decides how the annotated extent of a record is found.
// Prepare runs once per subset iteration, before the first record.
type AnnotatedStrategy interface {
	Prepare(l Layout) (AnnotatedFunc, error)
}

// AudioDuration annotates the whole audio file, from 0 to its end.
type AudioDuration struct{}

func (AudioDuration) Prepare(l Layout) (AnnotatedFunc, error) {
	return func(uri string) (*annotation.Timeline, error) {
		path, err := firstExisting(l.AudioCandidates(uri))
		if err != nil {
			return nil, fmt.Errorf("audio of %q: %w", uri, err)
		}
		info, err := audioinfo.Probe(path)
		if err != nil {
			return nil, err
		}
		return annotation.NewTimeline(uri, annotation.Segment{Start: 0, End: info.Seconds()}), nil
	}, nil
}

// UEM reads the annotated extent from an evaluation map loaded once per
// subset. Path may use {root} and {subset}; empty means
// <root>/<subset>/<subset>.uem.
type UEM struct {
	Path string
}

// File returns the UEM path for the subset of l.
func (u UEM) File(l Layout) string {
	if u.Path == "" {
		return filepath.Join(l.Dir(), l.Subset+".uem")
	}
	return strings.NewReplacer("{root}", l.Root, "{subset}", l.Subset).Replace(u.Path)
}

func (u UEM) Prepare(l Layout) (AnnotatedFunc, error) {
	uems, err := annotation.LoadUEM(u.File(l))
	if err != nil {
		return nil, fmt.Errorf("uem: %w", err)
	}
	return func(uri string) (*annotation.Timeline, error) {
		tl, ok := uems[uri]
		if !ok {
			return nil, fmt.Errorf("%w: %q not in uem", ErrLookup, uri)
		}
		return tl, nil
	}, nil
}

// Unknown leaves the annotated extent unset.
type Unknown struct{}

func (Unknown) Prepare(Layout) (AnnotatedFunc, error) {
	return func(string) (*annotation.Timeline, error) { return nil, nil }, nil
}

// ParseAnnotated maps a config name (duration, uem, none) to a strategy.
func ParseAnnotated(name, uemPath string) (AnnotatedStrategy, error) {
	switch strings.ToLower(name) {
	case "", "duration":
		return AudioDuration{}, nil
	case "uem":
		return UEM{Path: uemPath}, nil
	case "none":
		return Unknown{}, nil
	default:
		return nil, fmt.Errorf("unknown annotated strategy %q", name)
	}
}
