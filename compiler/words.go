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
	"math"
	"time"

	"github.com/versusvoid/rikaikun/entry"
	"github.com/versusvoid/rikaikun/internal/keys"
	"github.com/versusvoid/rikaikun/record"
)

// Part-of-speech flags of the deinflectable word classes.
const (
	FlagIchidan uint32 = 1 << iota
	FlagGodan
	FlagAdjectiveI
	FlagKuru
	FlagSuru
	FlagZuru
)

// DefaultPOSFlags maps part-of-speech tags to the flag of their class.
var DefaultPOSFlags = map[string]uint32{
	"v1":     FlagIchidan,
	"v1-s":   FlagIchidan,
	"v5aru":  FlagGodan,
	"v5b":    FlagGodan,
	"v5g":    FlagGodan,
	"v5k":    FlagGodan,
	"v5k-s":  FlagGodan,
	"v5m":    FlagGodan,
	"v5n":    FlagGodan,
	"v5r":    FlagGodan,
	"v5r-i":  FlagGodan,
	"v5s":    FlagGodan,
	"v5t":    FlagGodan,
	"v5u":    FlagGodan,
	"v5u-s":  FlagGodan,
	"adj-i":  FlagAdjectiveI,
	"adj-ix": FlagAdjectiveI,
	"vk":     FlagKuru,
	"vs":     FlagSuru,
	"vs-i":   FlagSuru,
	"vs-s":   FlagSuru,
	"vz":     FlagZuru,
}

// POSFlags returns the union of the flags of w's part-of-speech tags. Tags
// missing from table contribute nothing.
func POSFlags(w *entry.Word, table map[string]uint32) uint32 {
	var flags uint32
	for _, g := range w.SenseGroups {
		for _, p := range g.POS {
			flags |= table[p]
		}
	}
	return flags
}

func wordKeys(e entry.Entry) []string {
	return keys.Derive(e, true, true)
}

// CompileWords compiles the word corpus. src is read twice: once to find the
// minimum entry id and once to encode the entries.
func CompileWords(src Source, opts *Options) (*Corpus, error) {
	o := opts.withDefaults(wordKeys)
	log := o.Logger.With(slog.String("corpus", "words"))

	start := time.Now()
	log.Info("starting pass", slog.Int("pass", 1))
	minID := math.MaxInt
	n, err := each(src, log, func(e entry.Entry) error {
		minID = min(minID, e.Head().ID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("words pass 1: %w", err)
	}
	if n == 0 {
		minID = 0
	}
	log.Info("pass completed",
		slog.Int("pass", 1),
		slog.Int("entries", n),
		slog.Int("min_id", minID),
		slog.Duration("duration", time.Since(start)),
	)

	start = time.Now()
	log.Info("starting pass", slog.Int("pass", 2))
	c := newCorpus()
	c.MinID = minID
	enc := &record.Encoder{MinID: minID, IsRomanization: o.IsRomanization}
	c.Entries, err = each(src, log, func(e entry.Entry) error {
		w, ok := e.(*entry.Word)
		if !ok {
			return variantError(e, "word")
		}
		return c.add(enc, w, o.Keys(w), POSFlags(w, o.POSFlags))
	})
	if err != nil {
		return nil, fmt.Errorf("words pass 2: %w", err)
	}
	log.Info("pass completed",
		slog.Int("pass", 2),
		slog.Int("records", len(c.Records)),
		slog.Int("keys", len(c.Index)),
		slog.Int64("size", c.Size),
		slog.Duration("duration", time.Since(start)),
	)

	return c, nil
}
