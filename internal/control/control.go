package control

import (
	"io"
	"math"

	"brouhaha/internal/brouhaha"
	"brouhaha/internal/config"
	"brouhaha/internal/database"
	"brouhaha/internal/logging"

	"github.com/sirupsen/logrus"
)

// Summary is the compact view of one record printed by `samples`.
type Summary struct {
	URI          string   `json:"uri" yaml:"uri"`
	Speakers     []string `json:"speakers" yaml:"speakers"`
	Tracks       int      `json:"tracks" yaml:"tracks"`
	AnnotatedSec *float64 `json:"annotated_sec,omitempty" yaml:"annotated_sec,omitempty"`
	C50          float64  `json:"c50" yaml:"c50"`
	SNRFrames    int      `json:"snr_frames" yaml:"snr_frames"`
	SNRMin       float64  `json:"snr_min" yaml:"snr_min"`
	SNRMax       float64  `json:"snr_max" yaml:"snr_max"`
}

func summarize(f *database.ProtocolFile) Summary {
	s := Summary{
		URI:      f.URI,
		Speakers: f.Annotation.Labels(),
		Tracks:   f.Annotation.Len(),
		C50:      f.TargetFeatures.C50,
	}
	if f.Annotated != nil {
		d := f.Annotated.Duration()
		s.AnnotatedSec = &d
	}
	if snr := f.TargetFeatures.SNR; snr != nil && snr.NumFrames() > 0 {
		s.SNRFrames = snr.NumFrames()
		s.SNRMin, s.SNRMax = math.Inf(1), math.Inf(-1)
		for _, v := range snr.Column(0) {
			s.SNRMin = math.Min(s.SNRMin, v)
			s.SNRMax = math.Max(s.SNRMax, v)
		}
	}
	return s
}

// loadConfig loads the config and applies the --root flag.
func loadConfig(cfgPath, root *string) (*config.Config, error) {
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return nil, err
	}
	if root != nil && *root != "" {
		cfg.Corpus.Root = *root
	}
	return cfg, nil
}

// openRegistry builds the Brouhaha database from cfg and registers it.
func openRegistry(cfg *config.Config, logger *logrus.Logger) (*database.Registry, error) {
	annotated, err := brouhaha.ParseAnnotated(cfg.Corpus.Annotated, cfg.Corpus.UEMPath)
	if err != nil {
		return nil, err
	}
	opts := []brouhaha.Option{brouhaha.WithAnnotated(annotated)}
	if logger != nil {
		opts = append(opts, brouhaha.WithLogger(logger))
	}
	db := brouhaha.New(nil, opts...)
	if cfg.Corpus.Root != "" {
		db.SetRoot(cfg.Corpus.Root)
	}
	reg := database.NewRegistry()
	reg.Add(db.Database)
	return reg, nil
}

// setup loads the config, configures logging with console as the mirror
// target and opens the registry. verbose forces console logging at debug.
func setup(cfgPath, root *string, console io.Writer, verbose bool) (*config.Config, *logrus.Logger, *database.Registry, error) {
	cfg, err := loadConfig(cfgPath, root)
	if err != nil {
		return nil, nil, nil, err
	}
	if verbose {
		cfg.Logging.Console = true
		cfg.Logging.Level = "debug"
	}
	logger, err := logging.Configure(cfg, console)
	if err != nil {
		return nil, nil, nil, err
	}
	reg, err := openRegistry(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, reg, nil
}
