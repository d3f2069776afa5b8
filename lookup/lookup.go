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

// Package lookup resolves surface keys to word entries.
package lookup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/versusvoid/rikaikun/entry"
	"github.com/versusvoid/rikaikun/internal/folding"
	"github.com/versusvoid/rikaikun/internal/index"
)

// ErrAmbiguous indicates that no candidate for a key has the requested
// reading. This means the index and the entries disagree.
var ErrAmbiguous = errors.New("ambiguous lookup")

// Index maps keys to ordered candidate entries.
type Index interface {
	// Candidates returns the entries for key in index order, or nil.
	Candidates(key string) []*entry.Word
}

// Map is an Index backed by a map.
type Map map[string][]*entry.Word

// Candidates implements Index.
func (m Map) Candidates(key string) []*entry.Word {
	return m[key]
}

// KeyFunc returns the lookup keys of an entry.
type KeyFunc func(entry.Entry) []string

type keyed struct {
	key  string
	word *entry.Word
}

func keyOf(k keyed) string {
	return k.key
}

// SortedIndex is an Index backed by a sorted array.
type SortedIndex struct {
	index *index.Index[keyed]
}

// NewIndex indexes words under the keys returned by keys. Candidates for a key
// are in the order of words and an entry is listed at most once per key.
func NewIndex(words []*entry.Word, keys KeyFunc) *SortedIndex {
	var pairs []keyed
	for _, w := range words {
		seen := map[string]bool{}
		for _, k := range keys(w) {
			if seen[k] {
				continue
			}
			seen[k] = true
			pairs = append(pairs, keyed{key: k, word: w})
		}
	}
	return &SortedIndex{
		index: index.New(pairs, keyOf, strings.Compare),
	}
}

// Candidates implements Index.
func (s *SortedIndex) Candidates(key string) []*entry.Word {
	found := s.index.Search(key)
	if len(found) == 0 {
		return nil
	}
	words := make([]*entry.Word, 0, len(found))
	for _, k := range found {
		words = append(words, k.word)
	}
	return words
}

// candidates returns the candidates for key, retrying with key converted to
// hiragana.
func candidates(idx Index, key string) []*entry.Word {
	if c := idx.Candidates(key); len(c) > 0 {
		return c
	}
	if h := folding.ToHiragana(key, false); h != key {
		return idx.Candidates(h)
	}
	return nil
}

// current drops fully archaic candidates.
func current(words []*entry.Word) []*entry.Word {
	res := make([]*entry.Word, 0, len(words))
	for _, w := range words {
		if !w.IsArchaic() {
			res = append(res, w)
		}
	}
	return res
}

// Find returns the entries for key. When there are several candidates, those
// whose senses are all archaic are dropped.
func Find(idx Index, key string) []*entry.Word {
	c := candidates(idx, key)
	if len(c) < 2 {
		return c
	}
	return current(c)
}

// FindReading returns the entry for key that has the given reading. It
// returns nil if the key is unknown and the only candidate if there is just
// one. Otherwise the first non-archaic candidate with a reading matching
// reading after conversion to hiragana is returned, and ErrAmbiguous if there
// is none.
func FindReading(idx Index, key, reading string) (*entry.Word, error) {
	c := candidates(idx, key)
	switch len(c) {
	case 0:
		return nil, nil
	case 1:
		return c[0], nil
	}

	c = current(c)
	if w := withReading(c, folding.ToHiragana(reading, true)); w != nil {
		return w, nil
	}

	ids := make([]int, 0, len(c))
	for _, w := range c {
		ids = append(ids, w.ID)
	}
	return nil, fmt.Errorf("%w: key %q, reading %q, candidates %v", ErrAmbiguous, key, reading, ids)
}

// withReading returns the first word with a reading equal to hiragana after
// conversion.
func withReading(words []*entry.Word, hiragana string) *entry.Word {
	for _, w := range words {
		for _, r := range w.Readings {
			if folding.ToHiragana(r.Text, true) == hiragana {
				return w
			}
		}
	}
	return nil
}
