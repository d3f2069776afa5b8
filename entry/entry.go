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

// Package entry implements the dictionary entry model and its construction
// from the ordered child elements of a JMdict or JMnedict entry.
//
// An entry is either a [Word] (kanji spellings, kana readings and senses
// grouped by part of speech) or a [Name] (kanji spellings, kana readings and
// typed translations). Both share the [Forms] prefix. Entries are built once
// by a [Builder] and are not modified afterwards.
package entry

import (
	"iter"
	"slices"
)

const (
	// MiscArchaic marks a sense as archaic.
	MiscArchaic = "arch"

	// MiscUsuallyKana marks a sense as usually written using kana alone.
	MiscUsuallyKana = "uk"
)

// Kanji is a kanji spelling of an entry.
type Kanji struct {
	Text string

	// Inf holds orthography annotations (e.g. "iK", "ateji").
	Inf []string

	// Common is true if the spelling has a priority marker.
	Common bool
}

// Reading is a kana reading of an entry.
type Reading struct {
	Text string

	// NoKanji is true if the reading is not a true reading of the kanji.
	NoKanji bool

	// KanjiRestriction lists the positions of the kanji spellings the
	// reading applies to. A nil restriction applies to all kanji.
	KanjiRestriction []int

	Inf []string

	Common bool
}

// Sense is a single meaning of a word.
type Sense struct {
	// KanjiRestriction and ReadingRestriction list the positions of the
	// kanji spellings and readings the sense is limited to. Empty means
	// unrestricted.
	KanjiRestriction   []int
	ReadingRestriction []int

	Misc []string

	// LSource lists the source languages of loan words.
	LSource []string

	Dialect []string

	Glosses []string

	// Info is an optional free-text note.
	Info string
}

// IsArchaic returns true if the sense is marked archaic.
func (s *Sense) IsArchaic() bool {
	return slices.Contains(s.Misc, MiscArchaic)
}

// IsUsuallyKana returns true if the sense is marked as usually written in
// kana.
func (s *Sense) IsUsuallyKana() bool {
	return slices.Contains(s.Misc, MiscUsuallyKana)
}

// SenseGroup is a run of senses sharing one part-of-speech tag set.
type SenseGroup struct {
	POS    []string
	Senses []Sense
}

// IsArchaic returns true if every sense in the group is archaic.
func (g *SenseGroup) IsArchaic() bool {
	for i := range g.Senses {
		if !g.Senses[i].IsArchaic() {
			return false
		}
	}
	return true
}

// Trans is a translation of a name.
type Trans struct {
	Types   []string
	Glosses []string
}

// Forms is the part shared by words and names.
type Forms struct {
	ID       int
	Kanjis   []Kanji
	Readings []Reading
}

// Head returns the entry's id, kanji spellings and readings.
func (f *Forms) Head() *Forms {
	return f
}

// Entry is either a *Word or a *Name.
type Entry interface {
	Head() *Forms

	variant()
}

// Word is a word dictionary entry.
type Word struct {
	Forms

	SenseGroups []SenseGroup
}

func (*Word) variant() {}

// IsArchaic returns true if all of the word's senses are archaic.
func (w *Word) IsArchaic() bool {
	for i := range w.SenseGroups {
		if !w.SenseGroups[i].IsArchaic() {
			return false
		}
	}
	return true
}

// POS returns the word's part-of-speech tags across all sense groups without
// duplicates, in document order.
func (w *Word) POS() []string {
	var pos []string
	for _, g := range w.SenseGroups {
		for _, p := range g.POS {
			if !slices.Contains(pos, p) {
				pos = append(pos, p)
			}
		}
	}
	return pos
}

// UsuallyKanaReadings returns the readings of a word that is usually written
// in kana. Only the first sense marked usually-kana is considered: its
// reading restriction selects the readings, or all readings when it has
// none. The sequence is empty if no sense is marked. Callers that need the
// readings more than once should collect them.
func (w *Word) UsuallyKanaReadings() iter.Seq[Reading] {
	return func(yield func(Reading) bool) {
		s := w.firstUsuallyKana()
		if s == nil {
			return
		}
		if len(s.ReadingRestriction) > 0 {
			for _, i := range s.ReadingRestriction {
				if !yield(w.Readings[i]) {
					return
				}
			}
			return
		}
		for _, r := range w.Readings {
			if !yield(r) {
				return
			}
		}
	}
}

// firstUsuallyKana returns the first sense in document order that is marked
// usually-kana.
func (w *Word) firstUsuallyKana() *Sense {
	for i := range w.SenseGroups {
		for j := range w.SenseGroups[i].Senses {
			if s := &w.SenseGroups[i].Senses[j]; s.IsUsuallyKana() {
				return s
			}
		}
	}
	return nil
}

// Name is a proper name dictionary entry.
type Name struct {
	Forms

	Transes []Trans
}

func (*Name) variant() {}

// IsSimple returns true if the name has exactly one reading and one
// translation with a single gloss.
func (n *Name) IsSimple() bool {
	return len(n.Readings) == 1 && len(n.Transes) == 1 && len(n.Transes[0].Glosses) == 1
}
