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

// Package record encodes dictionary entries as single-line records.
//
// A record has up to four tab-separated fields:
//  1. Kanji spellings (omitted when the entry has none). Spellings that
//     apply to the same set of readings are grouped with ',' and groups are
//     separated by ';'. A group that does not apply to every reading is
//     followed by '#' and the positions of its readings.
//  2. Readings separated by ';'.
//  3. For words, sense groups separated by '\': the comma-separated parts
//     of speech, ';', then senses separated by '`'. For names, translations
//     separated by '\': comma-separated type codes, then ';' and the
//     glosses unless the translation is a romanization of the reading.
//  4. For words only, the id less the minimum id in base 62.
//
// When any spelling (or reading) of an entry is common, every spelling (or
// reading) that is not common is suffixed with 'U'.
package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/versusvoid/rikaikun/entry"
	"github.com/versusvoid/rikaikun/internal/folding"
	"github.com/versusvoid/rikaikun/internal/romaji"
)

var (
	// ErrReservedDelimiter indicates a text field containing a character
	// that delimits the record format.
	ErrReservedDelimiter = errors.New("reserved delimiter")

	// ErrUnknownTransType indicates a translation type missing from
	// TransTypes.
	ErrUnknownTransType = errors.New("unknown translation type")

	// ErrIDBias indicates an entry id below the encoder's minimum id.
	ErrIDBias = errors.New("entry id below minimum id")
)

// Reserved characters per field.
const (
	kanjiReserved   = "#|U,;\t\n"
	readingReserved = "|U;\t\n"
	posReserved     = ",;`\\\t\n"
	senseReserved   = "`\\\t\n"
	transReserved   = "\\\t\n"
)

// uncommonMark is appended to forms that are not common when a sibling is.
const uncommonMark = "U"

// TransTypes maps name translation types to their record codes.
var TransTypes = map[string]byte{
	"place":        'a',
	"company":      'c',
	"product":      'd',
	"fem":          'f',
	"given":        'g',
	"masc":         'm',
	"surname":      'n',
	"organization": 'o',
	"person":       'p',
	"station":      's',
	"unclass":      'u',
	"work":         'w',
}

// Record is an encoded entry.
type Record struct {
	// Line is the encoded record without a line terminator.
	Line []byte

	// MaxReadingIndex is the largest reading position written after a '#'
	// in the kanji field, or -1 if there is none.
	MaxReadingIndex int
}

// Encoder encodes entries.
type Encoder struct {
	// MinID is subtracted from word ids.
	MinID int

	// IsRomanization reports whether gloss is a romanization of a hiragana
	// reading. It defaults to romaji.IsRomanization.
	IsRomanization func(hiragana, gloss string) bool
}

// Encode encodes e. Encoding the same entry always gives the same bytes.
func (enc *Encoder) Encode(e entry.Entry) (*Record, error) {
	h := e.Head()
	rec := &Record{MaxReadingIndex: -1}

	var fields []string
	if len(h.Kanjis) > 0 {
		kanjis, maxReading, err := kanjiField(h)
		if err != nil {
			return nil, err
		}
		fields = append(fields, kanjis)
		rec.MaxReadingIndex = maxReading
	}

	readings, err := readingField(h)
	if err != nil {
		return nil, err
	}
	fields = append(fields, readings)

	switch e := e.(type) {
	case *entry.Word:
		senses, err := senseField(e)
		if err != nil {
			return nil, err
		}
		fields = append(fields, senses)

		if e.ID < enc.MinID {
			return nil, &entry.Error{ID: e.ID, Field: "id", Err: fmt.Errorf("%w: %d", ErrIDBias, enc.MinID)}
		}
		fields = append(fields, FormatBase62(uint64(e.ID-enc.MinID)))
	case *entry.Name:
		transes, err := enc.transField(e)
		if err != nil {
			return nil, err
		}
		fields = append(fields, transes)
	}

	rec.Line = []byte(strings.Join(fields, "\t"))
	return rec, nil
}

// kanjiGroup is a set of kanji spellings that apply to the same readings.
type kanjiGroup struct {
	readings []int
	kanjis   []int
}

// groupKanjis groups kanji positions by the exact set of reading positions
// that apply to them, in order of each group's first kanji. Kanji that no
// reading applies to are returned separately.
func groupKanjis(h *entry.Forms) ([]*kanjiGroup, []int) {
	applicable := make([][]int, len(h.Kanjis))
	for ri, r := range h.Readings {
		if len(r.KanjiRestriction) == 0 {
			for ki := range applicable {
				applicable[ki] = append(applicable[ki], ri)
			}
			continue
		}
		for _, ki := range r.KanjiRestriction {
			if n := len(applicable[ki]); n > 0 && applicable[ki][n-1] == ri {
				continue
			}
			applicable[ki] = append(applicable[ki], ri)
		}
	}

	var groups []*kanjiGroup
	var ungrouped []int
	bySet := map[string]*kanjiGroup{}
	for ki, readings := range applicable {
		if len(readings) == 0 {
			ungrouped = append(ungrouped, ki)
			continue
		}
		key := joinInts(readings)
		g, ok := bySet[key]
		if !ok {
			g = &kanjiGroup{readings: readings}
			bySet[key] = g
			groups = append(groups, g)
		}
		g.kanjis = append(g.kanjis, ki)
	}
	return groups, ungrouped
}

func kanjiField(h *entry.Forms) (string, int, error) {
	anyCommon := false
	for i, k := range h.Kanjis {
		if err := checkReserved(h.ID, fmt.Sprintf("kanji[%d]", i), k.Text, kanjiReserved); err != nil {
			return "", 0, err
		}
		anyCommon = anyCommon || k.Common
	}
	form := func(ki int) string {
		k := h.Kanjis[ki]
		if anyCommon && !k.Common {
			return k.Text + uncommonMark
		}
		return k.Text
	}

	groups, ungrouped := groupKanjis(h)

	maxReading := -1
	var parts []string
	for _, g := range groups {
		texts := make([]string, 0, len(g.kanjis))
		for _, ki := range g.kanjis {
			texts = append(texts, form(ki))
		}
		part := strings.Join(texts, ",")
		if len(g.readings) < len(h.Readings) {
			part += "#" + joinInts(g.readings)
			maxReading = max(maxReading, g.readings[len(g.readings)-1])
		}
		parts = append(parts, part)
	}
	for _, ki := range ungrouped {
		parts = append(parts, form(ki))
	}

	return strings.Join(parts, ";"), maxReading, nil
}

func readingField(h *entry.Forms) (string, error) {
	anyCommon := false
	for i, r := range h.Readings {
		if err := checkReserved(h.ID, fmt.Sprintf("reading[%d]", i), r.Text, readingReserved); err != nil {
			return "", err
		}
		anyCommon = anyCommon || r.Common
	}

	parts := make([]string, 0, len(h.Readings))
	for _, r := range h.Readings {
		if anyCommon && !r.Common {
			parts = append(parts, r.Text+uncommonMark)
		} else {
			parts = append(parts, r.Text)
		}
	}
	return strings.Join(parts, ";"), nil
}

func senseField(w *entry.Word) (string, error) {
	groups := make([]string, 0, len(w.SenseGroups))
	for gi, g := range w.SenseGroups {
		for pi, p := range g.POS {
			if err := checkReserved(w.ID, fmt.Sprintf("sense[%d].pos[%d]", gi, pi), p, posReserved); err != nil {
				return "", err
			}
		}

		senses := make([]string, 0, len(g.Senses))
		for si := range g.Senses {
			s := formatSense(&g.Senses[si], &w.Forms)
			if err := checkReserved(w.ID, fmt.Sprintf("sense[%d][%d]", gi, si), s, senseReserved); err != nil {
				return "", err
			}
			senses = append(senses, s)
		}
		groups = append(groups, strings.Join(g.POS, ",")+";"+strings.Join(senses, "`"))
	}
	return strings.Join(groups, "\\"), nil
}

// formatSense formats a sense as an optional restriction clause, an optional
// note and the glosses.
func formatSense(s *entry.Sense, h *entry.Forms) string {
	var parts []string
	if len(s.KanjiRestriction)+len(s.ReadingRestriction) > 0 {
		var only []string
		for _, ki := range s.KanjiRestriction {
			only = append(only, h.Kanjis[ki].Text)
		}
		for _, ri := range s.ReadingRestriction {
			only = append(only, h.Readings[ri].Text)
		}
		parts = append(parts, "(only "+strings.Join(only, ",")+")")
	}
	if s.Info != "" {
		parts = append(parts, "("+s.Info+")")
	}
	parts = append(parts, strings.Join(s.Glosses, "; "))
	return strings.Join(parts, " ")
}

func (enc *Encoder) transField(n *entry.Name) (string, error) {
	isRomanization := enc.IsRomanization
	if isRomanization == nil {
		isRomanization = romaji.IsRomanization
	}

	transes := make([]string, 0, len(n.Transes))
	for ti, t := range n.Transes {
		codes := make([]string, 0, len(t.Types))
		for i, typ := range t.Types {
			c, ok := TransTypes[typ]
			if !ok {
				return "", &entry.Error{
					ID:    n.ID,
					Field: fmt.Sprintf("trans[%d].types[%d]", ti, i),
					Err:   fmt.Errorf("%w: %q", ErrUnknownTransType, typ),
				}
			}
			codes = append(codes, string(c))
		}
		for gi, g := range t.Glosses {
			if err := checkReserved(n.ID, fmt.Sprintf("trans[%d].gloss[%d]", ti, gi), g, transReserved); err != nil {
				return "", err
			}
		}

		s := strings.Join(codes, ",")
		romanized := len(t.Glosses) == 1 && len(n.Readings) == 1 &&
			isRomanization(folding.ToHiragana(n.Readings[0].Text, false), t.Glosses[0])
		if !romanized {
			s += ";" + strings.Join(t.Glosses, "; ")
		}
		transes = append(transes, s)
	}
	return strings.Join(transes, "\\"), nil
}

func checkReserved(id int, field, text, reserved string) error {
	if i := strings.IndexAny(text, reserved); i >= 0 {
		return &entry.Error{
			ID:    id,
			Field: field,
			Err:   fmt.Errorf("%w: %q in %q", ErrReservedDelimiter, text[i], text),
		}
	}
	return nil
}

func joinInts(v []int) string {
	s := make([]string, len(v))
	for i, n := range v {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, ",")
}
