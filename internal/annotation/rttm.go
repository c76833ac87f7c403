package annotation

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseRTTM reads SPEAKER lines and groups them by uri:
//
//	SPEAKER <uri> <channel> <start> <duration> <NA> <NA> <label> <NA> <NA>
//
// Blank lines and lines starting with ";;" are skipped, as are record types
// other than SPEAKER.
func ParseRTTM(r io.Reader) (map[string]*Annotation, error) {
	out := map[string]*Annotation{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";;") {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] != "SPEAKER" {
			continue
		}
		if len(fields) < 8 {
			return nil, fmt.Errorf("rttm line %d: expected at least 8 fields, got %d", lineNo, len(fields))
		}
		start, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("rttm line %d: start: %w", lineNo, err)
		}
		dur, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, fmt.Errorf("rttm line %d: duration: %w", lineNo, err)
		}
		uri := fields[1]
		ann, ok := out[uri]
		if !ok {
			ann = New(uri, "speaker")
			out[uri] = ann
		}
		ann.Add(Segment{Start: start, End: start + dur}, fields[7])
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadRTTM parses the RTTM file at path.
func LoadRTTM(path string) (map[string]*Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	anns, err := ParseRTTM(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return anns, nil
}
