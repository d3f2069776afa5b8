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

// Package keys derives the lookup keys of dictionary entries.
package keys

import (
	"unicode"

	"github.com/versusvoid/rikaikun/entry"
	"github.com/versusvoid/rikaikun/internal/folding"
)

// Derive returns the lookup keys of e without duplicates, in first-seen
// order. Every kanji spelling is a key, and so is every reading, converted
// to hiragana with aggressive folding when toHiragana is set. When variate is
// set the raw reading, its loosely folded form, and the folded form of kanji
// spellings containing katakana are added as well.
func Derive(e entry.Entry, variate, toHiragana bool) []string {
	var res []string
	seen := map[string]bool{}
	add := func(k string) {
		if k == "" || seen[k] {
			return
		}
		seen[k] = true
		res = append(res, k)
	}

	h := e.Head()
	for _, k := range h.Kanjis {
		add(k.Text)
		if variate && hasKatakana(k.Text) {
			add(folding.ToHiragana(k.Text, true))
		}
	}
	for _, r := range h.Readings {
		if toHiragana {
			add(folding.ToHiragana(r.Text, true))
		} else {
			add(r.Text)
		}
		if variate {
			add(r.Text)
			add(folding.ToHiragana(r.Text, false))
		}
	}
	return res
}

func hasKatakana(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Katakana, r) {
			return true
		}
	}
	return false
}
