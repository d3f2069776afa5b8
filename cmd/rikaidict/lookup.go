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
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/versusvoid/rikaikun/compiler"
	"github.com/versusvoid/rikaikun/entry"
	"github.com/versusvoid/rikaikun/internal/keys"
	"github.com/versusvoid/rikaikun/jmdict"
	"github.com/versusvoid/rikaikun/lookup"
)

var lookupCommand = &cli.Command{
	Name:      "lookup",
	Usage:     "find the JMdict entries of a key",
	ArgsUsage: "KEY [READING]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "words",
			Usage: "read words from JMdict `FILE`",
		},
	},
	Action: runLookup,
}

func runLookup(c *cli.Context) error {
	if c.NArg() < 1 || c.NArg() > 2 {
		return fmt.Errorf("%w: want KEY [READING]", ErrFlagParse)
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("words") {
		cfg.WordsPath = c.String("words")
	}

	words, err := readWords(jmdict.File(cfg.WordsPath))
	if err != nil {
		return fmt.Errorf("reading %q: %w", cfg.WordsPath, err)
	}
	index := lookup.NewIndex(words, func(e entry.Entry) []string {
		return keys.Derive(e, true, true)
	})

	key := c.Args().Get(0)
	var found []*entry.Word
	if c.NArg() == 2 {
		w, err := lookup.FindReading(index, key, c.Args().Get(1))
		if err != nil {
			return err
		}
		if w != nil {
			found = append(found, w)
		}
	} else {
		found = lookup.Find(index, key)
	}

	tbl := table.New("ID", "Kanji", "Readings", "Usually kana", "POS").WithWriter(c.App.Writer)
	for _, w := range found {
		var kanjis, readings, kana []string
		for _, k := range w.Kanjis {
			kanjis = append(kanjis, k.Text)
		}
		for _, r := range w.Readings {
			readings = append(readings, r.Text)
		}
		for r := range w.UsuallyKanaReadings() {
			kana = append(kana, r.Text)
		}
		tbl.AddRow(w.ID, strings.Join(kanjis, ","), strings.Join(readings, ","), strings.Join(kana, ","), strings.Join(w.POS(), ","))
	}
	tbl.Print()
	return nil
}

// readWords reads all words from src.
func readWords(src compiler.Source) ([]*entry.Word, error) {
	s, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	var words []*entry.Word
	for s.Scan() {
		w, ok := s.Entry().(*entry.Word)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is not a word", compiler.ErrVariant, s.Entry().Head().ID)
		}
		words = append(words, w)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
