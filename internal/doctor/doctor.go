package doctor

import (
	"fmt"
	"os"

	"brouhaha/internal/annotation"
	"brouhaha/internal/brouhaha"
	"brouhaha/internal/config"
	"brouhaha/internal/database"
)

// Result represents a diagnostic check.
type Result struct {
	Name   string
	Pass   bool
	Detail string
}

// Run checks the config file and the layout of every subset under
// cfg.Corpus.Root.
func Run(cfg *config.Config) []Result {
	results := []Result{checkFile("config path", cfg.Paths.ConfigPath)}
	if cfg.Corpus.Root == "" {
		return append(results, Result{Name: "corpus.root", Pass: false, Detail: "not set (use --root, BROUHAHA_ROOT or corpus.root)"})
	}
	results = append(results, checkDir("corpus.root", cfg.Corpus.Root))
	for _, subset := range database.Subsets {
		results = append(results, checkSubset(cfg, brouhaha.Layout{Root: cfg.Corpus.Root, Subset: subset})...)
	}
	return results
}

func checkFile(label, path string) Result {
	if path == "" {
		return Result{Name: label, Pass: false, Detail: "not set"}
	}
	if _, err := os.Stat(os.ExpandEnv(path)); err != nil {
		return Result{Name: label, Pass: false, Detail: err.Error()}
	}
	return Result{Name: label, Pass: true, Detail: path}
}

func checkDir(label, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: label, Pass: false, Detail: err.Error()}
	}
	if !info.IsDir() {
		return Result{Name: label, Pass: false, Detail: "not a directory"}
	}
	return Result{Name: label, Pass: true, Detail: path}
}

// checkSubset reports, for one subset, whether every session found in
// rttm_files has its reverb label, its SNR array, and the audio file or UEM
// entry its annotated strategy reads.
func checkSubset(cfg *config.Config, l brouhaha.Layout) []Result {
	name := func(what string) string { return l.Subset + "/" + what }

	uris, err := l.URIs()
	if err != nil {
		return []Result{{Name: name("rttm"), Pass: false, Detail: err.Error()}}
	}
	results := []Result{{Name: name("rttm"), Pass: len(uris) > 0, Detail: fmt.Sprintf("%d sessions", len(uris))}}

	labels, err := brouhaha.LoadReverbLabels(l.ReverbLabels())
	if err != nil {
		results = append(results, Result{Name: name("reverb"), Pass: false, Detail: err.Error()})
	} else {
		results = append(results, countMissing(name("reverb"), uris, func(uri string) bool {
			_, ok := labels[uri]
			return ok
		}))
	}

	results = append(results, countMissing(name("snr"), uris, func(uri string) bool {
		return anyExists(l.SNRCandidates(uri))
	}))

	switch cfg.Corpus.Annotated {
	case config.AnnotatedDuration:
		results = append(results, countMissing(name("audio"), uris, func(uri string) bool {
			return anyExists(l.AudioCandidates(uri))
		}))
	case config.AnnotatedUEM:
		results = append(results, checkUEM(name("uem"), brouhaha.UEM{Path: cfg.Corpus.UEMPath}.File(l), uris))
	}
	return results
}

func checkUEM(label, path string, uris []string) Result {
	uems, err := annotation.LoadUEM(path)
	if err != nil {
		return Result{Name: label, Pass: false, Detail: err.Error()}
	}
	return countMissing(label, uris, func(uri string) bool {
		_, ok := uems[uri]
		return ok
	})
}

func countMissing(label string, uris []string, present func(string) bool) Result {
	missing := []string{}
	for _, uri := range uris {
		if !present(uri) {
			missing = append(missing, uri)
		}
	}
	if len(missing) == 0 {
		return Result{Name: label, Pass: true, Detail: fmt.Sprintf("%d/%d", len(uris), len(uris))}
	}
	detail := fmt.Sprintf("%d missing, first %q", len(missing), missing[0])
	return Result{Name: label, Pass: false, Detail: detail}
}

func anyExists(paths []string) bool {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}
