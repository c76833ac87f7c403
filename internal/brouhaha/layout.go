package brouhaha

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	rttmDir      = "rttm_files"
	snrDir       = "detailed_snr_labels"
	audioDir     = "audio_16k"
	reverbLabels = "reverb_labels.txt"
)

// Layout addresses the files of one subset under <root>/<subset>/.
type Layout struct {
	Root   string
	Subset string
}

func (l Layout) Dir() string          { return filepath.Join(l.Root, l.Subset) }
func (l Layout) RTTMDir() string      { return filepath.Join(l.Dir(), rttmDir) }
func (l Layout) SNRDir() string       { return filepath.Join(l.Dir(), snrDir) }
func (l Layout) AudioDir() string     { return filepath.Join(l.Dir(), audioDir) }
func (l Layout) ReverbLabels() string { return filepath.Join(l.Dir(), reverbLabels) }

// RTTM returns the ground-truth file of uri.
func (l Layout) RTTM(uri string) string {
	return filepath.Join(l.RTTMDir(), uri+".rttm")
}

// SNRCandidates lists where the SNR array of uri may live, newest naming first.
func (l Layout) SNRCandidates(uri string) []string {
	return []string{
		filepath.Join(l.SNRDir(), uri+"_snr.npy"),
		filepath.Join(l.SNRDir(), uri+".npy"),
	}
}

// AudioCandidates lists where the audio of uri may live.
func (l Layout) AudioCandidates(uri string) []string {
	return []string{
		filepath.Join(l.AudioDir(), uri+".flac"),
		filepath.Join(l.AudioDir(), uri+".wav"),
	}
}

// URIs returns the stems of rttm_files/*.rttm sorted lexicographically.
func (l Layout) URIs() ([]string, error) {
	entries, err := os.ReadDir(l.RTTMDir())
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	uris := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".rttm" {
			continue
		}
		uris = append(uris, strings.TrimSuffix(e.Name(), ".rttm"))
	}
	sort.Strings(uris)
	return uris, nil
}

// firstExisting returns the first path that exists. It returns an error
// wrapping os.ErrNotExist when none do.
func firstExisting(paths []string) (string, error) {
	for _, p := range paths {
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("none of %s: %w", strings.Join(paths, ", "), os.ErrNotExist)
}
