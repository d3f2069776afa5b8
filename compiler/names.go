// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compiler

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/versusvoid/rikaikun/entry"
	"github.com/versusvoid/rikaikun/internal/keys"
	"github.com/versusvoid/rikaikun/record"
)

func nameKeys(e entry.Entry) []string {
	return keys.Derive(e, false, true)
}

// mergeKey identifies simple names that share one record.
func mergeKey(n *entry.Name) string {
	return n.Readings[0].Text + "\x00" + strings.Join(n.Transes[0].Types, ",")
}

// CompileNames compiles the name corpus in a single pass over src.
//
// Simple names (see entry.Name.IsSimple) with the same reading and
// translation types are merged into the first of them, which collects the
// kanji spellings of the others. Other names are emitted in source order,
// followed by the merged names in order of first appearance.
func CompileNames(src Source, opts *Options) (*Corpus, error) {
	o := opts.withDefaults(nameKeys)
	log := o.Logger.With(slog.String("corpus", "names"))

	start := time.Now()
	log.Info("starting pass", slog.Int("pass", 1))

	c := newCorpus()
	enc := &record.Encoder{IsRomanization: o.IsRomanization}

	var merged []*entry.Name
	byKey := map[string]*entry.Name{}
	var err error
	c.Entries, err = each(src, log, func(e entry.Entry) error {
		n, ok := e.(*entry.Name)
		if !ok {
			return variantError(e, "name")
		}
		if !n.IsSimple() {
			return c.add(enc, n, o.Keys(n), 0)
		}

		k := mergeKey(n)
		if canonical, ok := byKey[k]; ok {
			canonical.Kanjis = append(canonical.Kanjis, n.Kanjis...)
			return nil
		}
		canonical := *n
		canonical.Kanjis = slices.Clone(n.Kanjis)
		byKey[k] = &canonical
		merged = append(merged, &canonical)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("names: %w", err)
	}

	for _, n := range merged {
		if err := c.add(enc, n, o.Keys(n), 0); err != nil {
			return nil, fmt.Errorf("names: %w", err)
		}
	}

	log.Info("pass completed",
		slog.Int("pass", 1),
		slog.Int("entries", c.Entries),
		slog.Int("merged", len(merged)),
		slog.Int("records", len(c.Records)),
		slog.Int("keys", len(c.Index)),
		slog.Int64("size", c.Size),
		slog.Duration("duration", time.Since(start)),
	)
	return c, nil
}
