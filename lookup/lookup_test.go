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

package lookup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/versusvoid/rikaikun/entry"
	"github.com/versusvoid/rikaikun/internal/keys"
)

func word(id int, archaic bool, readings ...string) *entry.Word {
	w := &entry.Word{Forms: entry.Forms{ID: id}}
	for _, r := range readings {
		w.Readings = append(w.Readings, entry.Reading{Text: r})
	}
	s := entry.Sense{Glosses: []string{"x"}}
	if archaic {
		s.Misc = []string{entry.MiscArchaic}
	}
	w.SenseGroups = []entry.SenseGroup{{POS: []string{"n"}, Senses: []entry.Sense{s}}}
	return w
}

func ids(words []*entry.Word) []int {
	var res []int
	for _, w := range words {
		res = append(res, w.ID)
	}
	return res
}

func TestFind(t *testing.T) {
	t.Parallel()

	archaic := word(1, true, "かれい")
	current := word(2, false, "かれい")
	mixed := word(3, false, "かれい")
	mixed.SenseGroups = append(mixed.SenseGroups, entry.SenseGroup{
		Senses: []entry.Sense{{Misc: []string{entry.MiscArchaic}, Glosses: []string{"y"}}},
	})

	idx := Map{
		"かれい": {archaic, current, mixed},
		"鰈":   {archaic},
		"こうひい": {current},
	}

	tests := []struct {
		name     string
		key      string
		expected []int
	}{
		{
			name:     "archaic dropped",
			key:      "かれい",
			expected: []int{2, 3},
		},
		{
			name:     "single archaic kept",
			key:      "鰈",
			expected: []int{1},
		},
		{
			name:     "katakana retry",
			key:      "コーヒー",
			expected: []int{2},
		},
		{
			name:     "missing",
			key:      "なし",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := ids(Find(idx, test.key))
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Find (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestFind_allArchaic(t *testing.T) {
	t.Parallel()

	idx := Map{"あ": {word(1, true, "あ"), word(2, true, "あ")}}
	if got := Find(idx, "あ"); len(got) != 0 {
		t.Fatalf("Find: want: empty, got: %v", ids(got))
	}
}

func TestFindReading(t *testing.T) {
	t.Parallel()

	archaic := word(1, true, "かれい")
	flounder := word(2, false, "かれい")
	curry := word(3, false, "カレー")
	single := word(4, true, "ひとつ")

	idx := Map{
		"かれい": {archaic, flounder, curry},
		"一つ":  {single},
	}

	tests := []struct {
		name    string
		key     string
		reading string

		expected int
		err      error
	}{
		{
			name:     "first matching current",
			key:      "かれい",
			reading:  "かれい",
			expected: 2,
		},
		{
			name:     "katakana reading folded",
			key:      "かれい",
			reading:  "カレー",
			expected: 2,
		},
		{
			name:     "single candidate ignores reading",
			key:      "一つ",
			reading:  "いち",
			expected: 4,
		},
		{
			name:    "missing key",
			key:     "なし",
			reading: "なし",
		},
		{
			name:    "no matching reading",
			key:     "かれい",
			reading: "さかな",
			err:     ErrAmbiguous,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			w, err := FindReading(idx, test.key, test.reading)
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("FindReading error (-want, +got):\n%s", diff)
			}
			got := 0
			if w != nil {
				got = w.ID
			}
			if got != test.expected {
				t.Fatalf("FindReading: want: %d, got: %d", test.expected, got)
			}
		})
	}
}

func TestNewIndex(t *testing.T) {
	t.Parallel()

	coffee := &entry.Word{Forms: entry.Forms{
		ID:       1,
		Kanjis:   []entry.Kanji{{Text: "珈琲"}},
		Readings: []entry.Reading{{Text: "コーヒー"}, {Text: "こうひい"}},
	}}
	beans := &entry.Word{Forms: entry.Forms{
		ID:       2,
		Kanjis:   []entry.Kanji{{Text: "珈琲豆"}},
		Readings: []entry.Reading{{Text: "コーヒーまめ"}},
	}}
	other := &entry.Word{Forms: entry.Forms{
		ID:       3,
		Readings: []entry.Reading{{Text: "こうひい"}},
	}}

	idx := NewIndex([]*entry.Word{coffee, beans, other}, func(e entry.Entry) []string {
		return keys.Derive(e, true, true)
	})

	tests := []struct {
		key      string
		expected []int
	}{
		{key: "こうひい", expected: []int{1, 3}},
		{key: "コーヒー", expected: []int{1}},
		{key: "珈琲", expected: []int{1}},
		{key: "こうひいまめ", expected: []int{2}},
		{key: "珈", expected: nil},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, ids(idx.Candidates(test.key))); diff != "" {
				t.Fatalf("Candidates (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestNewIndex_duplicateKeys(t *testing.T) {
	t.Parallel()

	w := word(1, false, "あ")
	idx := NewIndex([]*entry.Word{w}, func(entry.Entry) []string {
		return []string{"あ", "あ"}
	})
	if diff := cmp.Diff([]int{1}, ids(idx.Candidates("あ"))); diff != "" {
		t.Fatalf("Candidates (-want, +got):\n%s", diff)
	}
}
