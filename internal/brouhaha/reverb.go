package brouhaha

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CleanC50 stands in for sessions whose C50 was not measured (no reverb).
const CleanC50 = 60.0

const unmeasuredMarker = "None"

// ParseReverbLabels reads whitespace-separated "<uri> <c50|None>" rows into
// a uri → C50 map. Blank lines and lines starting with # are skipped.
// Malformed rows and duplicate uris are errors.
func ParseReverbLabels(r io.Reader) (map[string]float64, error) {
	out := map[string]float64{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: %w: expected 2 columns, got %d", lineNo, ErrMalformedLabel, len(fields))
		}
		uri, raw := fields[0], fields[1]
		if _, dup := out[uri]; dup {
			return nil, fmt.Errorf("line %d: %w: duplicate uri %q", lineNo, ErrMalformedLabel, uri)
		}
		c50, err := parseC50(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %q is neither a number nor %s", lineNo, ErrMalformedLabel, raw, unmeasuredMarker)
		}
		out[uri] = c50
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseC50(raw string) (float64, error) {
	if strings.EqualFold(raw, unmeasuredMarker) {
		return CleanC50, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// LoadReverbLabels parses the reverb-label table at path.
func LoadReverbLabels(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reverb labels: %w", err)
	}
	defer f.Close()
	labels, err := ParseReverbLabels(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return labels, nil
}
