// Package audioinfo reads audio headers without decoding samples.
package audioinfo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
)

// ErrUnsupported is returned for extensions other than .flac and .wav.
var ErrUnsupported = errors.New("unsupported audio format")

// ErrUnknownLength is returned for FLAC streams that do not record their
// sample count.
var ErrUnknownLength = errors.New("stream length not recorded")

// Info describes an audio file.
type Info struct {
	Path     string
	Format   *audio.Format
	Samples  int64
	Duration time.Duration
}

// Seconds returns the duration in seconds.
func (i Info) Seconds() float64 {
	return i.Duration.Seconds()
}

// Probe reads the header of the FLAC or WAV file at path.
func Probe(path string) (Info, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".flac":
		return probeFLAC(path)
	case ".wav":
		return probeWAV(path)
	default:
		return Info{}, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
}

func probeFLAC(path string) (Info, error) {
	stream, err := flac.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open flac: %w", err)
	}
	defer func() { _ = stream.Close() }()
	si := stream.Info
	if si.SampleRate == 0 {
		return Info{}, fmt.Errorf("%s: zero sample rate", path)
	}
	// STREAMINFO stores 0 when the encoder did not know the length.
	if si.NSamples == 0 {
		return Info{}, fmt.Errorf("%s: %w", path, ErrUnknownLength)
	}
	return Info{
		Path:     path,
		Format:   &audio.Format{NumChannels: int(si.NChannels), SampleRate: int(si.SampleRate)},
		Samples:  int64(si.NSamples),
		Duration: time.Duration(float64(si.NSamples) / float64(si.SampleRate) * float64(time.Second)),
	}, nil
}

func probeWAV(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Info{}, fmt.Errorf("%s: invalid wav file", path)
	}
	dur, err := dec.Duration()
	if err != nil {
		return Info{}, fmt.Errorf("wav duration: %w", err)
	}
	format := dec.Format()
	return Info{
		Path:     path,
		Format:   format,
		Samples:  int64(dur.Seconds() * float64(format.SampleRate)),
		Duration: dur,
	}, nil
}
