// Zaparoo Core
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Core.
//
// Zaparoo Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Core.  If not, see <http://www.gnu.org/licenses/>.

// Package cli wires the config, scanner, matcher and reporter into the
// namematch command.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/namematch/pkg/config"
	"github.com/ZaparooProject/namematch/pkg/helpers"
	"github.com/ZaparooProject/namematch/pkg/report"
	"github.com/adrg/xdg"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the collaborators a command run needs. Tests swap in an
// in-memory filesystem, a fake clock and buffers.
type App struct {
	Fs     afero.Fs
	Clock  clockwork.Clock
	Out    io.Writer
	Err    io.Writer
	LogDir string
}

func NewApp() *App {
	return &App{
		Fs:     afero.NewOsFs(),
		Clock:  clockwork.NewRealClock(),
		Out:    os.Stdout,
		Err:    os.Stderr,
		LogDir: filepath.Join(xdg.StateHome, config.AppName),
	}
}

type Flags struct {
	Config     string
	Algorithm  string
	Format     string
	Suffixes   []string
	Threshold  float64
	MaxMatches int
	Workers    int
	Recursive  bool
	Debug      bool
	NoColor    bool
	ShowParts  bool
	StripExt   bool
}

// NewRootCommand builds the namematch command tree.
func NewRootCommand(app *App) *cobra.Command {
	f := &Flags{}

	rootCmd := &cobra.Command{
		Use:           config.AppName + " [dir]",
		Short:         "Find files with similar names",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg, err := app.Setup(cmd.Flags(), f)
			if err != nil {
				return err
			}

			_, err = app.Run(cmd.Context(), cfg, dir)
			return err
		},
	}

	fl := rootCmd.Flags()
	fl.StringVarP(&f.Config, "config", "c", "", "config file path (default $"+config.CfgEnv+" or XDG config dir)")
	fl.StringVarP(&f.Algorithm, "algorithm", "a", "", "similarity algorithm: difflib, levenshtein or tokenized")
	fl.Float64VarP(&f.Threshold, "threshold", "t", config.BaseDefaults.Match.Threshold, "minimum similarity between 0 and 1")
	fl.IntVarP(&f.MaxMatches, "max", "m", config.BaseDefaults.Match.MaxMatches, "maximum matches reported per file")
	fl.StringArrayVarP(&f.Suffixes, "suffix", "s", nil, "only compare names ending in this suffix (repeatable)")
	fl.BoolVarP(&f.Recursive, "recursive", "r", false, "descend into subdirectories")
	fl.StringVarP(&f.Format, "format", "f", "", "output format: text, table, json or csv")
	fl.IntVar(&f.Workers, "workers", 0, "concurrent matching workers (0 uses one per CPU)")
	fl.BoolVar(&f.Debug, "debug", false, "enable debug logging on stderr")
	fl.BoolVar(&f.NoColor, "no-color", false, "disable colored output")
	fl.BoolVar(&f.ShowParts, "show-parts", false, "report part videos instead of skipping them")
	fl.BoolVar(&f.StripExt, "strip-ext", false, "compare names without their extension")

	rootCmd.AddCommand(newVersionCommand(app))

	return rootCmd
}

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(app.Out, "%s v%s\n", config.AppName, config.AppVersion)
			if err != nil {
				return fmt.Errorf("failed to print version: %w", err)
			}
			return nil
		},
	}
}

// Setup initializes logging and loads the user config, then applies any
// flags that were explicitly set on top of it.
func (app *App) Setup(fl *pflag.FlagSet, f *Flags) (*config.Instance, error) {
	var writers []io.Writer
	if f.Debug {
		writers = append(writers, zerolog.ConsoleWriter{Out: app.Err, NoColor: f.NoColor})
	}

	err := helpers.InitLogging(app.LogDir, config.LogFile, writers)
	if err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(f.Config, config.BaseDefaults)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	applyFlags(fl, f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	helpers.SetDebugLogging(cfg.DebugLogging())
	log.Debug().
		Str("version", config.AppVersion).
		Str("config", cfg.Path()).
		Msg("namematch starting")

	return cfg, nil
}

// applyFlags overrides config values with flags the user actually passed.
func applyFlags(fl *pflag.FlagSet, f *Flags, cfg *config.Instance) {
	if fl.Changed("algorithm") {
		cfg.SetAlgorithm(f.Algorithm)
	}
	if fl.Changed("threshold") {
		cfg.SetThreshold(f.Threshold)
	}
	if fl.Changed("max") {
		cfg.SetMaxMatches(f.MaxMatches)
	}
	if fl.Changed("suffix") {
		cfg.SetSuffixes(f.Suffixes)
	}
	if fl.Changed("recursive") {
		cfg.SetRecursive(f.Recursive)
	}
	if fl.Changed("format") {
		cfg.SetOutputFormat(f.Format)
	}
	if fl.Changed("workers") {
		cfg.SetWorkers(f.Workers)
	}
	if f.Debug {
		cfg.SetDebugLogging(true)
	}
	if f.NoColor {
		cfg.SetColor(report.ColorNever)
	}
	if f.ShowParts {
		cfg.SetPartVideos(report.PartVideosShow)
	}
	if fl.Changed("strip-ext") {
		cfg.SetStripExtension(f.StripExt)
	}
}
