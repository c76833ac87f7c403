package main

import (
	"fmt"
	"os"

	"brouhaha/internal/control"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	root := &cobra.Command{
		Use:   "brouhaha",
		Short: "Brouhaha: noisy speaker-diarization corpus browser",
		Long: `Brouhaha reads the Brouhaha corpus (RTTM ground truth, reverb labels, per-frame SNR arrays)
and prints the records of the Brouhaha.SpeakerDiarization.NoisySpeakerDiarization protocol.

Layout per subset (train, dev, test) under the corpus root:
  <root>/<subset>/rttm_files/<uri>.rttm
  <root>/<subset>/detailed_snr_labels/<uri>_snr.npy
  <root>/<subset>/reverb_labels.txt
  <root>/<subset>/audio_16k/<uri>.flac

Env overrides: BROUHAHA_ROOT, BROUHAHA_ANNOTATED (duration|uem|none),
               BROUHAHA_UEM_PATH, BROUHAHA_LOG_LEVEL/FORMAT/CONSOLE`,
		Example: `  brouhaha --root /data/brouhaha samples train --limit 5
  brouhaha samples dev --format yaml
  brouhaha samples test --full --limit 1
  brouhaha protocols
  brouhaha doctor
  brouhaha config set-root /data/brouhaha`,
		SilenceUsage: true,
	}

	root.Version = version
	root.SetVersionTemplate("Brouhaha v{{.Version}}\n")

	cfgPath := root.PersistentFlags().StringP("config", "c", "", "Path to config file (TOML). Defaults to ~/.config/brouhaha/config.toml")
	corpusRoot := root.PersistentFlags().String("root", "", "Corpus root directory (overrides corpus.root)")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(control.NewSamplesCmd(cfgPath, corpusRoot))
	root.AddCommand(control.NewProtocolsCmd(cfgPath, corpusRoot))
	root.AddCommand(control.NewDoctorCmd(cfgPath, corpusRoot))
	root.AddCommand(control.NewConfigCmd(cfgPath, corpusRoot))
	root.AddCommand(control.NewTailLogCmd(cfgPath))

	return root.Execute()
}
