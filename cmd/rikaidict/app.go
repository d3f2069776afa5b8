// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/versusvoid/rikaikun"
	"github.com/versusvoid/rikaikun/internal/config"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrRikaidict is a parent error for all command errors.
var ErrRikaidict = errors.New("rikaidict")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrRikaidict)

// ErrOpen indicates that some dictionaries could not be opened or searched.
var ErrOpen = fmt.Errorf("%w: opening dictionaries", ErrRikaidict)

var copyrightNames = []string{
	"2021 Google LLC",
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This is done because `rikaidict --help foo` will display a
	// "command foo not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

func printVersion(c *cli.Context) error {
	v := version.GetVersionInfo()
	_, err := fmt.Fprintln(c.App.Writer, v.String())
	return err
}

// loadConfig loads the configuration named by the --config flag.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}
	return cfg, nil
}

// newLogger returns a text logger writing to the app's error writer.
func newLogger(c *cli.Context, cfg *config.Config) *slog.Logger {
	level, err := cfg.Level()
	check(err)
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
}

// openDictionaries opens all dictionaries under the existing directories of
// dirs. Each directory is opened once.
func openDictionaries(dirs []string) ([]*rikaikun.Dictionary, []error) {
	var dicts []*rikaikun.Dictionary
	var errs []error

	seen := map[string]bool{}
	for _, path := range dirs {
		path = filepath.Clean(path)
		if seen[path] {
			continue
		}
		seen[path] = true
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		openDicts, openErrs := rikaikun.OpenAll(path)

		dicts = append(dicts, openDicts...)
		errs = append(errs, openErrs...)
	}

	return dicts, errs
}

func newRikaidictApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Compile and search JMdict dictionaries.",
		Description: strings.Join([]string{
			"Compiles the JMdict and JMnedict XML files into rikaikun dictionaries.",
			"http://github.com/versusvoid/rikaikun",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from YAML `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{"RIKAIKUN_CONFIG"},
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			buildCommand,
			searchCommand,
			lookupCommand,
		},
	}
}
