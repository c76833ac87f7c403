package logging

import (
	"io"
	"strings"

	"brouhaha/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Configure sets up logrus with rotation. With logging.console set, entries
// are mirrored to console, which callers point at stderr so that records
// printed on stdout stay machine-readable. Every entry carries the tool's
// corpus field.
func Configure(cfg *config.Config, console io.Writer) (*logrus.Logger, error) {
	if err := config.MustStatePaths(cfg); err != nil {
		return nil, err
	}
	logger := logrus.New()
	switch strings.ToLower(cfg.Logging.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if lvl, err := logrus.ParseLevel(strings.ToLower(cfg.Logging.Level)); err == nil {
		logger.SetLevel(lvl)
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.Paths.LogPath,
		MaxSize:    20, // megabytes
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   false,
	}
	if cfg.Logging.Console && console != nil {
		logger.SetOutput(io.MultiWriter(console, rotator))
	} else {
		logger.SetOutput(rotator)
	}
	logger.AddHook(corpusHook{root: cfg.Corpus.Root})
	return logger, nil
}

// corpusHook stamps the corpus root on every entry, so a shared log file
// tells runs over different corpora apart.
type corpusHook struct {
	root string
}

func (corpusHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h corpusHook) Fire(e *logrus.Entry) error {
	if _, ok := e.Data["corpus"]; !ok && h.root != "" {
		e.Data["corpus"] = h.root
	}
	return nil
}

// NewTestLogger returns a logger that discards everything.
func NewTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)
	return logger
}
