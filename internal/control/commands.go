package control

import (
	"fmt"
	"os"
	"strings"

	"brouhaha/internal/config"
	"brouhaha/internal/doctor"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// NewProtocolsCmd lists registered protocols.
func NewProtocolsCmd(cfgPath, root *string) *cobra.Command {
	return &cobra.Command{
		Use:   "protocols",
		Short: "List registered protocols",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath, root)
			if err != nil {
				return err
			}
			reg, err := openRegistry(cfg, nil)
			if err != nil {
				return err
			}
			for _, name := range reg.Names() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

// NewTailLogCmd tails the main log file (simple last N lines).
func NewTailLogCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tail-log",
		Short: "Show last 50 log lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			return tailFile(cmd, cfg.Paths.LogPath, 50)
		},
	}
}

func tailFile(cmd *cobra.Command, path string, n int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), l)
		}
	}
	return nil
}

// NewDoctorCmd checks the config and the corpus layout.
func NewDoctorCmd(cfgPath, root *string) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check config and corpus layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath, root)
			if err != nil {
				return err
			}
			results := doctor.Run(cfg)
			exitCode := 0
			for _, r := range results {
				status := "ok"
				if !r.Pass {
					status = "fail"
					exitCode = 1
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-4s %s\n", r.Name, status, r.Detail)
			}
			if exitCode != 0 {
				return fmt.Errorf("doctor found issues")
			}
			return nil
		},
	}
}

// NewConfigCmd groups config subcommands (show/set-root).
func NewConfigCmd(cfgPath, root *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the config file",
	}
	cmd.AddCommand(newConfigShowCmd(cfgPath, root))
	cmd.AddCommand(newConfigSetRootCmd(cfgPath))
	return cmd
}

func newConfigShowCmd(cfgPath, root *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath, root)
			if err != nil {
				return err
			}
			out, err := toml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", cfg.Paths.ConfigPath, out)
			return nil
		},
	}
}

func newConfigSetRootCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set-root <path>",
		Short: "Set corpus.root in config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			cfg.Corpus.Root = args[0]
			if err := config.Save(cfg, cfg.Paths.ConfigPath); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "corpus.root set to %q in %s\n", args[0], cfg.Paths.ConfigPath)
			return nil
		},
	}
}
