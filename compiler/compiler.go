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

// Package compiler assembles encoded records and their key index from a
// stream of dictionary entries.
package compiler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/versusvoid/rikaikun/entry"
	"github.com/versusvoid/rikaikun/record"
)

var (
	// ErrVariant indicates a word in a name source or a name in a word
	// source.
	ErrVariant = errors.New("unexpected entry variant")

	// ErrOffsetOverflow indicates a corpus too large for 32-bit offsets.
	ErrOffsetOverflow = errors.New("record offset overflow")
)

// progressInterval is the number of entries between progress logs.
const progressInterval = 1000

// Scanner iterates over the entries of a source.
type Scanner interface {
	// Scan advances to the next entry. It returns false at the end of the
	// source or on error.
	Scan() bool

	// Entry returns the current entry.
	Entry() entry.Entry

	// Err returns the first error encountered.
	Err() error

	// Close releases the source.
	Close() error
}

// Source is a replayable stream of entries. Each call to Open starts from
// the first entry.
type Source interface {
	Open() (Scanner, error)
}

// KeyFunc returns the lookup keys of an entry.
type KeyFunc func(entry.Entry) []string

// Offset is the offset of a record in a corpus. Flags holds the record's
// part-of-speech flags; zero means a plain offset.
type Offset struct {
	Offset uint32
	Flags  uint32
}

// Corpus is a compiled dictionary.
type Corpus struct {
	// Records are the encoded records in output order.
	Records [][]byte

	// Index maps each key to the offsets of its records, ascending and
	// without duplicates.
	Index map[string][]Offset

	// MinID is the id subtracted from word ids. It is zero for names.
	MinID int

	// MaxReadingIndex is the largest reading position written in any kanji
	// group, or -1.
	MaxReadingIndex int

	// Entries is the number of entries read from the source.
	Entries int

	// Size is the total size of the records including their newlines.
	Size int64
}

func newCorpus() *Corpus {
	return &Corpus{
		Index:           map[string][]Offset{},
		MaxReadingIndex: -1,
	}
}

// add encodes e, indexes it under keys and appends it.
func (c *Corpus) add(enc *record.Encoder, e entry.Entry, keys []string, flags uint32) error {
	rec, err := enc.Encode(e)
	if err != nil {
		return err
	}
	if c.Size > math.MaxUint32 {
		return &entry.Error{ID: e.Head().ID, Field: "offset", Err: fmt.Errorf("%w: %d", ErrOffsetOverflow, c.Size)}
	}

	off := Offset{Offset: uint32(c.Size), Flags: flags}
	for _, k := range keys {
		offs := c.Index[k]
		if n := len(offs); n > 0 && offs[n-1].Offset == off.Offset {
			continue
		}
		c.Index[k] = append(offs, off)
	}

	c.Records = append(c.Records, rec.Line)
	c.Size += int64(len(rec.Line)) + 1
	c.MaxReadingIndex = max(c.MaxReadingIndex, rec.MaxReadingIndex)
	return nil
}

// Options are options for compiling a corpus.
type Options struct {
	// Keys derives the lookup keys of an entry. Words default to all key
	// variants converted to hiragana. Names default to keys without
	// variants.
	Keys KeyFunc

	// POSFlags maps part-of-speech tags to flags. Defaults to
	// DefaultPOSFlags.
	POSFlags map[string]uint32

	// IsRomanization judges name translations. See record.Encoder.
	IsRomanization func(hiragana, gloss string) bool

	// Logger receives progress logs. Defaults to discarding them.
	Logger *slog.Logger
}

func (o *Options) withDefaults(keys KeyFunc) Options {
	var res Options
	if o != nil {
		res = *o
	}
	if res.Keys == nil {
		res.Keys = keys
	}
	if res.POSFlags == nil {
		res.POSFlags = DefaultPOSFlags
	}
	if res.Logger == nil {
		res.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return res
}

// each calls fn for every entry of src and returns the number of entries.
func each(src Source, log *slog.Logger, fn func(entry.Entry) error) (int, error) {
	s, err := src.Open()
	if err != nil {
		return 0, fmt.Errorf("opening source: %w", err)
	}

	n, err := scan(s, log, fn)
	if cerr := s.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing source: %w", cerr)
	}
	return n, err
}

func scan(s Scanner, log *slog.Logger, fn func(entry.Entry) error) (int, error) {
	n := 0
	for s.Scan() {
		if err := fn(s.Entry()); err != nil {
			return n, err
		}
		n++
		if n%progressInterval == 0 {
			log.Debug("progress", slog.Int("entries", n))
		}
	}
	if err := s.Err(); err != nil {
		return n, fmt.Errorf("reading source: %w", err)
	}
	return n, nil
}

func variantError(e entry.Entry, want string) error {
	return &entry.Error{ID: e.Head().ID, Field: "entry", Err: fmt.Errorf("%w: want %s, got %T", ErrVariant, want, e)}
}
