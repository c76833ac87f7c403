package control

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brouhaha/internal/config"

	"github.com/sbinet/npyio"
	"gopkg.in/yaml.v3"
)

func write(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func writeSNR(t *testing.T, path string, values []float64) {
	t.Helper()
	var buf bytes.Buffer
	if err := npyio.Write(&buf, values); err != nil {
		t.Fatalf("npy: %v", err)
	}
	write(t, path, buf.Bytes())
}

// fixture writes a two-session train subset and a config pointing at it.
func fixture(t *testing.T) (cfgPath, root string) {
	t.Helper()
	dir := t.TempDir()
	root = filepath.Join(dir, "corpus")
	train := filepath.Join(root, "train")
	write(t, filepath.Join(train, "rttm_files", "b.rttm"), []byte("SPEAKER b 1 0.0 1.0 <NA> <NA> s1 <NA> <NA>\n"))
	write(t, filepath.Join(train, "rttm_files", "a.rttm"), []byte(
		"SPEAKER a 1 0.0 1.0 <NA> <NA> s1 <NA> <NA>\nSPEAKER a 1 1.0 1.0 <NA> <NA> s2 <NA> <NA>\n"))
	write(t, filepath.Join(train, "reverb_labels.txt"), []byte("a None\nb 12.5\n"))
	writeSNR(t, filepath.Join(train, "detailed_snr_labels", "a_snr.npy"), []float64{-30, 5, 20})
	writeSNR(t, filepath.Join(train, "detailed_snr_labels", "b_snr.npy"), []float64{1})

	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	cfg.Corpus.Annotated = config.AnnotatedNone
	cfg.Paths.StateDir = filepath.Join(dir, "state")
	cfg.Paths.LogPath = filepath.Join(dir, "state", "brouhaha.log")
	cfgPath = filepath.Join(dir, "config.toml")
	if err := config.Save(cfg, cfgPath); err != nil {
		t.Fatalf("save: %v", err)
	}
	return cfgPath, root
}

func runSamples(t *testing.T, cfgPath, root string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runSamplesSplit(t, cfgPath, root, args...)
	return out, err
}

func runSamplesSplit(t *testing.T, cfgPath, root string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewSamplesCmd(&cfgPath, &root)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSamplesJSON(t *testing.T) {
	cfgPath, root := fixture(t)
	out, err := runSamples(t, cfgPath, root, "train", "--format", "json")
	if err != nil {
		t.Fatalf("samples: %v\n%s", err, out)
	}
	dec := json.NewDecoder(strings.NewReader(out))
	var got []Summary
	for dec.More() {
		var s Summary
		if err := dec.Decode(&s); err != nil {
			t.Fatalf("decode: %v", err)
		}
		got = append(got, s)
	}
	if len(got) != 2 || got[0].URI != "a" || got[1].URI != "b" {
		t.Fatalf("summaries = %+v", got)
	}
	a := got[0]
	if a.C50 != 60 || a.Tracks != 2 || len(a.Speakers) != 2 {
		t.Fatalf("a = %+v", a)
	}
	if a.SNRFrames != 3 || a.SNRMin != -15 || a.SNRMax != 20 {
		t.Fatalf("a snr = %+v", a)
	}
	if a.AnnotatedSec != nil {
		t.Fatalf("annotated should be omitted")
	}
}

func TestSamplesLimitAndYAML(t *testing.T) {
	cfgPath, root := fixture(t)
	out, err := runSamples(t, cfgPath, root, "train", "--format", "yaml", "--limit", "1")
	if err != nil {
		t.Fatalf("samples: %v\n%s", err, out)
	}
	var s Summary
	if err := yaml.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("yaml: %v\n%s", err, out)
	}
	if s.URI != "a" {
		t.Fatalf("uri = %q", s.URI)
	}
	if strings.Contains(out, "uri: b") {
		t.Fatalf("limit ignored:\n%s", out)
	}
}

func TestSamplesFullRecord(t *testing.T) {
	cfgPath, root := fixture(t)
	out, err := runSamples(t, cfgPath, root, "train", "--full", "--limit", "1")
	if err != nil {
		t.Fatalf("samples: %v\n%s", err, out)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if rec["database"] != "Brouhaha" || rec["uri"] != "a" {
		t.Fatalf("record = %v", rec)
	}
}

func TestSamplesVerboseLogsToStderr(t *testing.T) {
	cfgPath, root := fixture(t)
	out, logs, err := runSamplesSplit(t, cfgPath, root, "train", "--format", "json", "--verbose")
	if err != nil {
		t.Fatalf("samples: %v\n%s", err, logs)
	}
	if !strings.Contains(logs, "loaded a") {
		t.Fatalf("expected per-record debug logs on stderr, got %q", logs)
	}
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var s Summary
		if err := dec.Decode(&s); err != nil {
			t.Fatalf("stdout is not clean json: %v\n%s", err, out)
		}
	}
}

func TestSamplesUnknownSubset(t *testing.T) {
	cfgPath, root := fixture(t)
	if _, err := runSamples(t, cfgPath, root, "validation"); err == nil {
		t.Fatalf("expected error for unknown subset")
	}
}

func TestSamplesWithoutRoot(t *testing.T) {
	cfgPath, _ := fixture(t)
	out, err := runSamples(t, cfgPath, "", "train")
	if err == nil || !strings.Contains(err.Error(), "root not set") {
		t.Fatalf("err = %v\n%s", err, out)
	}
}

func TestProtocolsAndDoctor(t *testing.T) {
	cfgPath, root := fixture(t)

	cmd := NewProtocolsCmd(&cfgPath, &root)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("protocols: %v", err)
	}
	if strings.TrimSpace(out.String()) != DefaultProtocol {
		t.Fatalf("protocols = %q", out.String())
	}

	doc := NewDoctorCmd(&cfgPath, &root)
	out.Reset()
	doc.SetOut(&out)
	doc.SetErr(&out)
	doc.SetArgs([]string{})
	if err := doc.Execute(); err == nil {
		t.Fatalf("doctor should fail: dev and test are missing")
	}
	if !strings.Contains(out.String(), "train/reverb") {
		t.Fatalf("doctor output:\n%s", out.String())
	}
}

func TestConfigSetRoot(t *testing.T) {
	cfgPath, _ := fixture(t)
	cmd := NewConfigCmd(&cfgPath, new(string))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"set-root", "/corpora/brouhaha"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("set-root: %v", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Corpus.Root != "/corpora/brouhaha" {
		t.Fatalf("root = %q", cfg.Corpus.Root)
	}
}
