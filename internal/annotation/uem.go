package annotation

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseUEM reads "<uri> <channel> <start> <end>" lines into one timeline per uri.
func ParseUEM(r io.Reader) (map[string]*Timeline, error) {
	out := map[string]*Timeline{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";;") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("uem line %d: expected 4 fields, got %d", lineNo, len(fields))
		}
		start, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("uem line %d: start: %w", lineNo, err)
		}
		end, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("uem line %d: end: %w", lineNo, err)
		}
		uri := fields[0]
		tl, ok := out[uri]
		if !ok {
			tl = &Timeline{URI: uri}
			out[uri] = tl
		}
		tl.Add(Segment{Start: start, End: end})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadUEM parses the UEM file at path.
func LoadUEM(path string) (map[string]*Timeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	uems, err := ParseUEM(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return uems, nil
}
