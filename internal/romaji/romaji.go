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

// Package romaji decides whether a translation is a plain romanization of a
// kana reading.
package romaji

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var syllables = map[string]string{
	"あ": "a", "い": "i", "う": "u", "え": "e", "お": "o",
	"か": "ka", "き": "ki", "く": "ku", "け": "ke", "こ": "ko",
	"が": "ga", "ぎ": "gi", "ぐ": "gu", "げ": "ge", "ご": "go",
	"さ": "sa", "し": "shi", "す": "su", "せ": "se", "そ": "so",
	"ざ": "za", "じ": "ji", "ず": "zu", "ぜ": "ze", "ぞ": "zo",
	"た": "ta", "ち": "chi", "つ": "tsu", "て": "te", "と": "to",
	"だ": "da", "ぢ": "ji", "づ": "zu", "で": "de", "ど": "do",
	"な": "na", "に": "ni", "ぬ": "nu", "ね": "ne", "の": "no",
	"は": "ha", "ひ": "hi", "ふ": "fu", "へ": "he", "ほ": "ho",
	"ば": "ba", "び": "bi", "ぶ": "bu", "べ": "be", "ぼ": "bo",
	"ぱ": "pa", "ぴ": "pi", "ぷ": "pu", "ぺ": "pe", "ぽ": "po",
	"ま": "ma", "み": "mi", "む": "mu", "め": "me", "も": "mo",
	"や": "ya", "ゆ": "yu", "よ": "yo",
	"ら": "ra", "り": "ri", "る": "ru", "れ": "re", "ろ": "ro",
	"わ": "wa", "ゐ": "i", "ゑ": "e", "を": "o", "ん": "n",
	"ゔ": "vu",
	"ぁ": "a", "ぃ": "i", "ぅ": "u", "ぇ": "e", "ぉ": "o",
	"ゃ": "ya", "ゅ": "yu", "ょ": "yo", "ゎ": "wa",

	"きゃ": "kya", "きゅ": "kyu", "きょ": "kyo",
	"ぎゃ": "gya", "ぎゅ": "gyu", "ぎょ": "gyo",
	"しゃ": "sha", "しゅ": "shu", "しぇ": "she", "しょ": "sho",
	"じゃ": "ja", "じゅ": "ju", "じぇ": "je", "じょ": "jo",
	"ちゃ": "cha", "ちゅ": "chu", "ちぇ": "che", "ちょ": "cho",
	"ぢゃ": "ja", "ぢゅ": "ju", "ぢょ": "jo",
	"にゃ": "nya", "にゅ": "nyu", "にょ": "nyo",
	"ひゃ": "hya", "ひゅ": "hyu", "ひょ": "hyo",
	"びゃ": "bya", "びゅ": "byu", "びょ": "byo",
	"ぴゃ": "pya", "ぴゅ": "pyu", "ぴょ": "pyo",
	"みゃ": "mya", "みゅ": "myu", "みょ": "myo",
	"りゃ": "rya", "りゅ": "ryu", "りょ": "ryo",
	"ふぁ": "fa", "ふぃ": "fi", "ふぇ": "fe", "ふぉ": "fo",
	"てぃ": "ti", "でぃ": "di", "とぅ": "tu", "どぅ": "du",
	"うぃ": "wi", "うぇ": "we", "うぉ": "wo",
	"ゔぁ": "va", "ゔぃ": "vi", "ゔぇ": "ve", "ゔぉ": "vo",
}

const sokuon = 'っ'

// Romanize returns the Hepburn romanization of a hiragana string. It returns
// false if s contains anything other than hiragana.
func Romanize(s string) (string, bool) {
	rs := []rune(s)
	var b strings.Builder
	double := false
	for i := 0; i < len(rs); {
		if rs[i] == sokuon {
			double = true
			i++
			continue
		}

		var syl string
		ok := false
		if i+1 < len(rs) {
			syl, ok = syllables[string(rs[i:i+2])]
			if ok {
				i += 2
			}
		}
		if !ok {
			syl, ok = syllables[string(rs[i])]
			if !ok {
				return "", false
			}
			i++
		}

		if double {
			switch {
			case strings.HasPrefix(syl, "ch"):
				b.WriteByte('t')
			case !strings.ContainsRune("aiueon", rune(syl[0])):
				b.WriteByte(syl[0])
			}
			double = false
		}
		b.WriteString(syl)
	}
	return b.String(), true
}

// longVowels collapses long vowels and assimilated n so that different
// romanization conventions compare equal.
var longVowels = strings.NewReplacer(
	"ou", "o",
	"oo", "o",
	"uu", "u",
	"aa", "a",
	"ee", "e",
	"nb", "mb",
	"np", "mp",
	"nm", "mm",
)

// fold strips diacritics, lowercases s, removes everything but ASCII
// letters, and collapses long vowels.
func fold(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
		cases.Lower(language.Und),
	)
	res, _, err := transform.String(t, s)
	if err != nil {
		res = strings.ToLower(s)
	}
	res = strings.Map(func(r rune) rune {
		if 'a' <= r && r <= 'z' {
			return r
		}
		return -1
	}, res)
	return longVowels.Replace(res)
}

// IsRomanization returns true if gloss is a plain romanization of the
// hiragana reading.
func IsRomanization(hiragana, gloss string) bool {
	r, ok := Romanize(hiragana)
	if !ok {
		return false
	}
	folded := fold(r)
	return folded != "" && folded == fold(gloss)
}
