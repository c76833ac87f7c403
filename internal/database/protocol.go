package database

import (
	"fmt"
	"iter"

	"brouhaha/internal/annotation"
)

// Subset names understood by protocols.
const (
	Train       = "train"
	Development = "dev"
	Test        = "test"
)

// Subsets lists the three splits in canonical order.
var Subsets = []string{Train, Development, Test}

// TargetFeatures carries auxiliary per-file training targets.
type TargetFeatures struct {
	C50 float64                          `json:"c50"`
	SNR *annotation.SlidingWindowFeature `json:"snr"`
}

// ProtocolFile is one record yielded by a protocol.
type ProtocolFile struct {
	Database       string                 `json:"database"`
	URI            string                 `json:"uri"`
	Annotation     *annotation.Annotation `json:"annotation"`
	Annotated      *annotation.Timeline   `json:"annotated"`
	TargetFeatures TargetFeatures         `json:"target_features"`

	preprocessors Preprocessors
	computed      map[string]any
}

// Get returns the value of preprocessor key for this file, computing it on
// first access.
func (f *ProtocolFile) Get(key string) (any, error) {
	if v, ok := f.computed[key]; ok {
		return v, nil
	}
	p, ok := f.preprocessors[key]
	if !ok {
		return nil, fmt.Errorf("%s: no preprocessor %q", f.URI, key)
	}
	v, err := p(f)
	if err != nil {
		return nil, fmt.Errorf("%s: preprocessor %q: %w", f.URI, key, err)
	}
	if f.computed == nil {
		f.computed = map[string]any{}
	}
	f.computed[key] = v
	return v, nil
}

// Keys returns the preprocessor keys available through Get.
func (f *ProtocolFile) Keys() []string {
	return f.preprocessors.Keys()
}

// SpeakerDiarizationProtocol is implemented by corpus adapters.
type SpeakerDiarizationProtocol interface {
	TrainIter() iter.Seq2[*ProtocolFile, error]
	DevelopmentIter() iter.Seq2[*ProtocolFile, error]
	TestIter() iter.Seq2[*ProtocolFile, error]
}

// ProtocolFactory builds a fresh protocol implementation.
type ProtocolFactory func() SpeakerDiarizationProtocol

// Protocol is what consumers iterate: an implementation plus the owning
// database's preprocessors.
type Protocol struct {
	Name          string
	impl          SpeakerDiarizationProtocol
	preprocessors Preprocessors
}

// Train yields the training subset.
func (p *Protocol) Train() iter.Seq2[*ProtocolFile, error] {
	return p.wrap(p.impl.TrainIter())
}

// Development yields the development subset.
func (p *Protocol) Development() iter.Seq2[*ProtocolFile, error] {
	return p.wrap(p.impl.DevelopmentIter())
}

// Test yields the test subset.
func (p *Protocol) Test() iter.Seq2[*ProtocolFile, error] {
	return p.wrap(p.impl.TestIter())
}

// Subset selects one of Train, Development or Test by name.
func (p *Protocol) Subset(name string) (iter.Seq2[*ProtocolFile, error], error) {
	switch name {
	case Train:
		return p.Train(), nil
	case Development:
		return p.Development(), nil
	case Test:
		return p.Test(), nil
	default:
		return nil, fmt.Errorf("unknown subset %q (want train, dev or test)", name)
	}
}

func (p *Protocol) wrap(seq iter.Seq2[*ProtocolFile, error]) iter.Seq2[*ProtocolFile, error] {
	return func(yield func(*ProtocolFile, error) bool) {
		for f, err := range seq {
			if f != nil {
				f.preprocessors = p.preprocessors
			}
			if !yield(f, err) {
				return
			}
		}
	}
}
