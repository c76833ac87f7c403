// Package brouhaha exposes the Brouhaha noisy speaker-diarization corpus as
// a database with a single protocol,
// Brouhaha.SpeakerDiarization.NoisySpeakerDiarization.
//
// Each subset lives under <root>/<subset>/ with rttm_files/,
// detailed_snr_labels/, audio_16k/ and reverb_labels.txt.
package brouhaha

import (
	"io"

	"brouhaha/internal/database"

	"github.com/sirupsen/logrus"
)

const (
	DatabaseName = "Brouhaha"
	Task         = "SpeakerDiarization"
	ProtocolName = "NoisySpeakerDiarization"
)

// Brouhaha is the corpus database.
type Brouhaha struct {
	*database.Database

	root      *CorpusRoot
	annotated AnnotatedStrategy
	logger    logrus.FieldLogger
}

// Option customizes New.
type Option func(*Brouhaha)

// WithAnnotated selects how the annotated extent is resolved.
// The default is AudioDuration.
func WithAnnotated(s AnnotatedStrategy) Option {
	return func(b *Brouhaha) { b.annotated = s }
}

// WithLogger sets the logger used while iterating.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Brouhaha) { b.logger = l }
}

// New builds the database and registers NoisySpeakerDiarization.
// preprocessors are handed to the database base as is.
func New(preprocessors database.Preprocessors, opts ...Option) *Brouhaha {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	b := &Brouhaha{
		Database:  database.NewDatabase(DatabaseName, preprocessors),
		root:      &CorpusRoot{},
		annotated: AudioDuration{},
		logger:    quiet,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.RegisterProtocol(Task, ProtocolName, func() database.SpeakerDiarizationProtocol {
		return b.NoisySpeakerDiarization()
	})
	return b
}

// Root returns the corpus root, or ErrRootNotSet.
func (b *Brouhaha) Root() (string, error) {
	return b.root.Get()
}

// SetRoot replaces the corpus root.
func (b *Brouhaha) SetRoot(path string) {
	b.root.Set(path)
}

// NoisySpeakerDiarization returns the protocol implementation bound to this
// database's root.
func (b *Brouhaha) NoisySpeakerDiarization() *NoisySpeakerDiarization {
	return &NoisySpeakerDiarization{
		root:      b.root,
		annotated: b.annotated,
		logger:    b.logger,
	}
}
