package brouhaha

import (
	"fmt"
	"iter"

	"brouhaha/internal/annotation"
	"brouhaha/internal/database"

	"github.com/sirupsen/logrus"
)

// NoisySpeakerDiarization yields one record per session of a subset.
type NoisySpeakerDiarization struct {
	root      *CorpusRoot
	annotated AnnotatedStrategy
	logger    logrus.FieldLogger
}

var _ database.SpeakerDiarizationProtocol = (*NoisySpeakerDiarization)(nil)

func (p *NoisySpeakerDiarization) TrainIter() iter.Seq2[*database.ProtocolFile, error] {
	return p.Samples(database.Train)
}

func (p *NoisySpeakerDiarization) DevelopmentIter() iter.Seq2[*database.ProtocolFile, error] {
	return p.Samples(database.Development)
}

func (p *NoisySpeakerDiarization) TestIter() iter.Seq2[*database.ProtocolFile, error] {
	return p.Samples(database.Test)
}

// Samples iterates subset in uri order. The reverb table, the session list
// and the annotated strategy are prepared when iteration starts; everything
// else is read when its record is pulled. The first error is yielded with a
// nil file and ends the iteration.
func (p *NoisySpeakerDiarization) Samples(subset string) iter.Seq2[*database.ProtocolFile, error] {
	return func(yield func(*database.ProtocolFile, error) bool) {
		root, err := p.root.Get()
		if err != nil {
			yield(nil, err)
			return
		}
		l := Layout{Root: root, Subset: subset}
		log := p.logger.WithField("subset", subset)

		c50s, err := LoadReverbLabels(l.ReverbLabels())
		if err != nil {
			yield(nil, err)
			return
		}
		uris, err := l.URIs()
		if err != nil {
			yield(nil, err)
			return
		}
		annotated, err := p.annotated.Prepare(l)
		if err != nil {
			yield(nil, err)
			return
		}
		log.Infof("iterating %d sessions under %s", len(uris), l.Dir())

		for _, uri := range uris {
			f, err := p.load(l, uri, c50s, annotated)
			if err != nil {
				yield(nil, fmt.Errorf("%s/%s: %w", subset, uri, err))
				return
			}
			log.Debugf("loaded %s (%d tracks, %d snr frames)", uri, f.Annotation.Len(), f.TargetFeatures.SNR.NumFrames())
			if !yield(f, nil) {
				return
			}
		}
	}
}

func (p *NoisySpeakerDiarization) load(l Layout, uri string, c50s map[string]float64, annotated AnnotatedFunc) (*database.ProtocolFile, error) {
	c50, ok := c50s[uri]
	if !ok {
		return nil, fmt.Errorf("%w: %q has no reverb label", ErrLookup, uri)
	}

	ann, err := loadSpeakers(l, uri)
	if err != nil {
		return nil, err
	}

	extent, err := annotated(uri)
	if err != nil {
		return nil, err
	}

	snr, err := LoadSNR(l, uri)
	if err != nil {
		return nil, err
	}

	return &database.ProtocolFile{
		Database:   DatabaseName,
		URI:        uri,
		Annotation: ann,
		Annotated:  extent,
		TargetFeatures: database.TargetFeatures{
			C50: c50,
			SNR: snr,
		},
	}, nil
}

// loadSpeakers returns the turns of uri from its RTTM file. A file without
// SPEAKER lines is a session with no speech; a file whose lines all name
// other uris is a lookup error.
func loadSpeakers(l Layout, uri string) (*annotation.Annotation, error) {
	path := l.RTTM(uri)
	anns, err := annotation.LoadRTTM(path)
	if err != nil {
		return nil, err
	}
	if len(anns) == 0 {
		return annotation.New(uri, "speaker"), nil
	}
	ann, ok := anns[uri]
	if !ok {
		return nil, fmt.Errorf("%w: %q not in %s", ErrLookup, uri, path)
	}
	return ann, nil
}
