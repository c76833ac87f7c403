package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brouhaha/internal/config"

	"github.com/sirupsen/logrus"
)

func TestConfigureWritesRotatedFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	cfg.Paths.StateDir = dir
	cfg.Paths.LogPath = filepath.Join(dir, "logs", "brouhaha.log")
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	logger, err := Configure(cfg, nil)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v", logger.GetLevel())
	}
	logger.WithField("subset", "train").Info("iterating")

	data, err := os.ReadFile(cfg.Paths.LogPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"subset":"train"`) {
		t.Fatalf("expected json field in log, got %s", data)
	}
}

func TestConfigureMirrorsToConsole(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	cfg.Corpus.Root = "/data/brouhaha"
	cfg.Paths.StateDir = dir
	cfg.Paths.LogPath = filepath.Join(dir, "brouhaha.log")
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"

	var console bytes.Buffer
	logger, err := Configure(cfg, &console)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	logger.Info("quiet")
	if console.Len() != 0 {
		t.Fatalf("console written without logging.console: %s", console.String())
	}

	cfg.Logging.Console = true
	logger, err = Configure(cfg, &console)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	logger.Info("loud")
	if !strings.Contains(console.String(), `"corpus":"/data/brouhaha"`) || !strings.Contains(console.String(), "loud") {
		t.Fatalf("console = %s", console.String())
	}
	data, err := os.ReadFile(cfg.Paths.LogPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "quiet") || !strings.Contains(string(data), "loud") {
		t.Fatalf("log file = %s", data)
	}
}
