// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlogic/internal/config"
	"github.com/katalvlaran/lvlogic/internal/logging"
	"github.com/katalvlaran/lvlogic/knowledge"
	"github.com/katalvlaran/lvlogic/report"
)

// version is set at build time via -ldflags.
var version = "dev"

// app carries the state shared by every subcommand once the root has
// loaded configuration and knowledge.
type app struct {
	configPath string
	kbDir      string
	format     string
	logLevel   string

	cfg *config.Config
	lib *knowledge.Library
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "lvlogic",
		Short: "Certainty-factor and fuzzy reasoning over YAML knowledge bases",
		Long: "lvlogic diagnoses car faults with certainty factors, scores medical risk\n" +
			"with Mamdani fuzzy inference and screens symptoms against disease profiles.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		Version: version,
	}
	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	f.StringVar(&a.kbDir, "kb-dir", "", "Directory of knowledge bases (default: embedded)")
	f.StringVar(&a.format, "format", "", "Report format: table or markdown")
	f.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(newCarCmd(a))
	root.AddCommand(newFuzzyCmd(a))
	root.AddCommand(newMedicalCmd(a))
	root.AddCommand(newDemoCmd(a))
	root.AddCommand(newKBCmd(a))

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.kbDir != "" {
		cfg.Knowledge.Dir = a.kbDir
	}
	if a.format != "" {
		cfg.Report.Format = a.format
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logging.Init(level, cfg.Log.Format, cmd.ErrOrStderr())
	a.cfg = cfg
	a.log = logging.New("cli")

	return nil
}

// library loads the configured knowledge bases on first use. The kb
// subcommands never call it, so a broken directory can still be validated.
func (a *app) library() (*knowledge.Library, error) {
	if a.lib != nil {
		return a.lib, nil
	}
	var (
		lib *knowledge.Library
		err error
	)
	if a.cfg.Knowledge.Dir == "" {
		lib, err = knowledge.Default()
	} else {
		lib, err = knowledge.Open(os.DirFS(a.cfg.Knowledge.Dir), a.cfg.Knowledge.Pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("load knowledge: %w", err)
	}
	a.lib = lib

	return lib, nil
}

func (a *app) printer(cmd *cobra.Command) (*report.Printer, error) {
	mode, err := report.ParseMode(a.cfg.Report.Format)
	if err != nil {
		return nil, err
	}

	return report.NewPrinter(cmd.OutOrStdout(), mode, a.cfg.Report.Top), nil
}
