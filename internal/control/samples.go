package control

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"brouhaha/internal/brouhaha"
	"brouhaha/internal/database"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// DefaultProtocol is the protocol `samples` iterates unless --protocol is given.
const DefaultProtocol = brouhaha.DatabaseName + "." + brouhaha.Task + "." + brouhaha.ProtocolName

// NewSamplesCmd prints the records of one subset.
func NewSamplesCmd(cfgPath, root *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "samples <train|dev|test>",
		Short:     "Print the records of a subset",
		Args:      cobra.ExactArgs(1),
		ValidArgs: database.Subsets,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			_, logger, reg, err := setup(cfgPath, root, cmd.ErrOrStderr(), verbose)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("protocol")
			limit, _ := cmd.Flags().GetInt("limit")
			format, _ := cmd.Flags().GetString("format")
			full, _ := cmd.Flags().GetBool("full")

			p, err := reg.Get(name)
			if err != nil {
				return err
			}
			seq, err := p.Subset(args[0])
			if err != nil {
				return err
			}
			w, err := newRecordWriter(cmd.OutOrStdout(), format, full)
			if err != nil {
				return err
			}

			n := 0
			for f, err := range seq {
				if err != nil {
					return err
				}
				if err := w.write(f); err != nil {
					return err
				}
				n++
				if limit > 0 && n >= limit {
					break
				}
			}
			logger.Infof("%s %s: printed %d records", p.Name, args[0], n)
			return w.close()
		},
	}
	cmd.Flags().String("protocol", DefaultProtocol, "protocol to iterate (Database.Task.Protocol)")
	cmd.Flags().Int("limit", 0, "stop after this many records (0 = all)")
	cmd.Flags().String("format", "text", "output format: text, json or yaml")
	cmd.Flags().Bool("full", false, "print complete JSON records, including annotations and SNR frames")
	cmd.Flags().BoolP("verbose", "v", false, "log per-record loads to stderr")
	return cmd
}

type recordWriter struct {
	out    io.Writer
	format string
	full   bool
	json   *json.Encoder
	yaml   *yaml.Encoder
}

func newRecordWriter(out io.Writer, format string, full bool) (*recordWriter, error) {
	w := &recordWriter{out: out, format: strings.ToLower(format), full: full}
	if full {
		w.format = "json"
	}
	switch w.format {
	case "text":
	case "json":
		w.json = json.NewEncoder(out)
	case "yaml":
		w.yaml = yaml.NewEncoder(out)
		w.yaml.SetIndent(2)
	default:
		return nil, fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
	return w, nil
}

func (w *recordWriter) write(f *database.ProtocolFile) error {
	if w.full {
		return w.json.Encode(f)
	}
	s := summarize(f)
	switch w.format {
	case "json":
		return w.json.Encode(s)
	case "yaml":
		return w.yaml.Encode(s)
	}
	annotated := "-"
	if s.AnnotatedSec != nil {
		annotated = fmt.Sprintf("%.2fs", *s.AnnotatedSec)
	}
	_, err := fmt.Fprintf(w.out, "%-24s speakers=%-2d tracks=%-4d annotated=%-8s c50=%-6.2f snr=%d frames [%.1f, %.1f]\n",
		s.URI, len(s.Speakers), s.Tracks, annotated, s.C50, s.SNRFrames, s.SNRMin, s.SNRMax)
	return err
}

func (w *recordWriter) close() error {
	if w.yaml != nil {
		return w.yaml.Close()
	}
	return nil
}
