package brouhaha

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sbinet/npyio"
)

// session describes one fixture session. A nil snr skips the array and a
// zero seconds skips the audio file.
type session struct {
	uri     string
	c50     string
	rttm    string
	snr     any
	seconds int
}

func speakerLine(uri string, start, dur float64, label string) string {
	return fmt.Sprintf("SPEAKER %s 1 %.3f %.3f <NA> <NA> %s <NA> <NA>\n", uri, start, dur, label)
}

func mustWrite(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeNPY(t *testing.T, path string, values any) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := npyio.Write(f, values); err != nil {
		t.Fatalf("write npy: %v", err)
	}
}

func writeWAV(t *testing.T, path string, seconds int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	const rate = 8000
	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           make([]int, rate*seconds),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

// writeFLAC writes a STREAMINFO-only FLAC file of the given length at 16 kHz.
func writeFLAC(t *testing.T, path string, seconds int) {
	t.Helper()
	const rate = 16000
	buf := append([]byte("fLaC"), 0x80, 0x00, 0x00, 34)
	buf = binary.BigEndian.AppendUint16(buf, 4096)
	buf = binary.BigEndian.AppendUint16(buf, 4096)
	buf = append(buf, 0, 0, 0, 0, 0, 0)
	buf = binary.BigEndian.AppendUint64(buf, uint64(rate)<<44|15<<36|uint64(rate*seconds))
	buf = append(buf, make([]byte, 16)...)
	mustWrite(t, path, buf)
}

// writeSubset lays out sessions under root/subset and returns the layout.
// Sessions with an empty c50 get no reverb-label row.
func writeSubset(t *testing.T, root, subset string, sessions []session) Layout {
	t.Helper()
	l := Layout{Root: root, Subset: subset}
	var labels strings.Builder
	for _, s := range sessions {
		rttm := s.rttm
		if rttm == "" {
			rttm = speakerLine(s.uri, 0, 1, "spk0")
		}
		mustWrite(t, l.RTTM(s.uri), []byte(rttm))
		if s.c50 != "" {
			fmt.Fprintf(&labels, "%s %s\n", s.uri, s.c50)
		}
		if s.snr != nil {
			writeNPY(t, l.SNRCandidates(s.uri)[0], s.snr)
		}
		if s.seconds > 0 {
			writeWAV(t, l.AudioCandidates(s.uri)[1], s.seconds)
		}
	}
	mustWrite(t, l.ReverbLabels(), []byte(labels.String()))
	return l
}
