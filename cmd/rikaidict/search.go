// Copyright 2021 Google LLC
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
)

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "search compiled dictionaries",
	ArgsUsage: "QUERY",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "data-dir",
			Usage:   "include dictionaries in `DIR` instead of the default locations",
			Aliases: []string{"d"},
		},
	},
	Action: runSearch,
}

func runSearch(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: want one QUERY", ErrFlagParse)
	}
	query := c.Args().First()

	dirs := c.StringSlice("data-dir")
	if !c.IsSet("data-dir") {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		dirs = dictLocations(cfg)
	}

	dicts, errs := openDictionaries(dirs)
	for _, err := range errs {
		fmt.Fprintln(c.App.ErrWriter, err)
	}
	defer func() {
		for _, d := range dicts {
			_ = d.Close()
		}
	}()

	for _, d := range dicts {
		results, err := d.Search(query)
		if err != nil {
			err = fmt.Errorf("%s: %w", d.Bookname(), err)
			fmt.Fprintln(c.App.ErrWriter, err)
			errs = append(errs, err)
			continue
		}
		if len(results) == 0 {
			continue
		}

		fmt.Fprintln(c.App.Writer, d.Bookname())
		tbl := table.New("Key", "Offset", "Flags", "Record").WithWriter(c.App.Writer)
		for _, r := range results {
			tbl.AddRow(r.Key, r.Offset, fmt.Sprintf("%#x", r.Flags), strings.ReplaceAll(string(r.Record), "\t", " | "))
		}
		tbl.Print()
		fmt.Fprintln(c.App.Writer)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %d errors", ErrOpen, len(errs))
	}
	return nil
}
