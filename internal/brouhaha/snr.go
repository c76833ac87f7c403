package brouhaha

import (
	"fmt"
	"os"
	"strings"

	"brouhaha/internal/annotation"

	"github.com/sbinet/npyio"
)

const (
	// SNRFloor is the lowest SNR reported; lower values are raised to it.
	SNRFloor = -15.0
	// SNRCeiling is the nominal upper bound. It is not enforced.
	SNRCeiling = 80.0
)

// SNRWindow maps SNR frames onto time.
var SNRWindow = annotation.SlidingWindow{Duration: 2.0, Step: 0.01, Start: 0}

// ReadSNR decodes a float32 or float64 .npy array, flattened.
func ReadSNR(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	switch dtype := strings.TrimLeft(r.Header.Descr.Type, "<>|="); dtype {
	case "f8":
		var values []float64
		if err := r.Read(&values); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return values, nil
	case "f4":
		var values []float32
		if err := r.Read(&values); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out := make([]float64, len(values))
		for i, v := range values {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: unsupported dtype %q", path, r.Header.Descr.Type)
	}
}

// ClampSNR raises every value below SNRFloor to SNRFloor, in place.
func ClampSNR(values []float64) []float64 {
	for i, v := range values {
		if v < SNRFloor {
			values[i] = SNRFloor
		}
	}
	return values
}

// LoadSNR finds, reads and clamps the SNR array of uri and lays it over
// SNRWindow, one frame per value.
func LoadSNR(l Layout, uri string) (*annotation.SlidingWindowFeature, error) {
	path, err := firstExisting(l.SNRCandidates(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: no snr array for %q: %v", ErrLookup, uri, err)
	}
	values, err := ReadSNR(path)
	if err != nil {
		return nil, err
	}
	return annotation.NewSlidingWindowFeature(ClampSNR(values), SNRWindow), nil
}
