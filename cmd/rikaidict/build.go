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
	"fmt"
	"log/slog"
	"maps"
	"os"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/versusvoid/rikaikun"
	"github.com/versusvoid/rikaikun/compiler"
	"github.com/versusvoid/rikaikun/jmdict"
)

var buildCommand = &cli.Command{
	Name:  "build",
	Usage: "compile the word and name dictionaries",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "words",
			Usage: "read words from JMdict `FILE`",
		},
		&cli.StringFlag{
			Name:  "names",
			Usage: "read names from JMnedict `FILE`",
		},
		&cli.StringFlag{
			Name:    "output-dir",
			Usage:   "write dictionaries to `DIR`",
			Aliases: []string{"o"},
		},
		&cli.BoolFlag{
			Name:  "no-dictzip",
			Usage: "write uncompressed .dict files",
		},
	},
	Action: runBuild,
}

type corpusBuild struct {
	name     string
	bookname string
	path     string
	compile  func(compiler.Source, *compiler.Options) (*compiler.Corpus, error)
}

func runBuild(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("words") {
		cfg.WordsPath = c.String("words")
	}
	if c.IsSet("names") {
		cfg.NamesPath = c.String("names")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	log := newLogger(c, cfg)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating %q: %w", cfg.OutputDir, err)
	}

	posFlags := maps.Clone(compiler.DefaultPOSFlags)
	maps.Copy(posFlags, cfg.POSFlags)
	opts := &compiler.Options{
		POSFlags: posFlags,
		Logger:   log,
	}

	tbl := table.New("Corpus", "Entries", "Records", "Keys", "Min ID", "Max reading", "Idx size", "Dict size").
		WithWriter(c.App.Writer)
	for _, b := range []corpusBuild{
		{name: cfg.WordsName, bookname: "JMdict", path: cfg.WordsPath, compile: compiler.CompileWords},
		{name: cfg.NamesName, bookname: "JMnedict", path: cfg.NamesPath, compile: compiler.CompileNames},
	} {
		corpus, err := b.compile(jmdict.File(b.path), opts)
		if err != nil {
			return fmt.Errorf("compiling %q: %w", b.path, err)
		}

		s, err := rikaikun.Write(cfg.OutputDir, b.name, corpus, &rikaikun.WriteOptions{
			Bookname: b.bookname,
			DictZip:  !c.Bool("no-dictzip"),
		})
		if err != nil {
			return err
		}
		log.Info("dictionary written",
			slog.String("path", s.IfoPath),
			slog.Int("records", s.Records),
			slog.Int("keys", s.Keys),
		)
		tbl.AddRow(b.name, corpus.Entries, s.Records, s.Keys, corpus.MinID, corpus.MaxReadingIndex, s.IdxFileSize, s.DictSize)
	}
	tbl.Print()
	return nil
}
