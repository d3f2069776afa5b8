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

package folding

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

const (
	katakanaFirst = 'ァ'
	katakanaLast  = 'ヶ'
	hiraganaShift = 'ァ' - 'ぁ'

	longVowelMark = 'ー'
)

// longVowels maps a kana to the vowel a following long vowel mark stands for.
var longVowels = map[rune]rune{}

// eRow and oRow hold the kana whose following え and お are pronounced い and
// う respectively.
var (
	eRow = runeSet("えけげせぜてでねへべぺめれゑ")
	oRow = runeSet("おこごそぞとどのほぼぽもよょろ")
)

func init() {
	rows := []struct {
		kana  string
		vowel rune
	}{
		{"あかがさざただなはばぱまやゃらわ", 'あ'},
		{"いきぎしじちぢにひびぴみりゐ", 'い'},
		{"うくぐすずつづぬふぶぷむゆゅる", 'う'},
		{"えけげせぜてでねへべぺめれゑ", 'い'},
		{"おこごそぞとどのほぼぽもよょろ", 'う'},
		{"ぁぃぅぇぉゔゎ", longVowelMark},
	}
	for _, row := range rows {
		for _, k := range row.kana {
			longVowels[k] = row.vowel
		}
	}
}

func runeSet(s string) map[rune]bool {
	m := map[rune]bool{}
	for _, r := range s {
		m[r] = true
	}
	return m
}

// KanaFolder converts katakana to hiragana and resolves long vowel marks to
// the vowel of the preceding kana. When Aggressive is set it also folds
// historical and particle spellings: を to お, づ to ず, は to わ, お after an
// o-row kana to う, and え after an e-row kana to い.
type KanaFolder struct {
	Aggressive bool

	// prev is the last emitted rune.
	prev rune
}

// Transform implements [transform.Transformer.Transform].
func (f *KanaFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		c, size := utf8.DecodeRune(src[nSrc:])

		out := f.fold(c)
		if nDst+utf8.RuneLen(out) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], out)
		nSrc += size
		f.prev = out
	}
	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (f *KanaFolder) Reset() {
	f.prev = 0
}

// fold returns the folded form of c given the previously emitted rune.
func (f *KanaFolder) fold(c rune) rune {
	switch {
	case katakanaFirst <= c && c <= katakanaLast:
		c -= hiraganaShift
	case c == longVowelMark:
		if v, ok := longVowels[f.prev]; ok {
			c = v
		}
	}

	if !f.Aggressive {
		return c
	}

	switch c {
	case 'を':
		c = 'お'
	case 'づ':
		c = 'ず'
	case 'は':
		c = 'わ'
	}
	if c == 'お' && oRow[f.prev] {
		c = 'う'
	}
	if c == 'え' && eRow[f.prev] {
		c = 'い'
	}
	return c
}

// ToHiragana returns s with katakana converted to hiragana and long vowel
// marks resolved. See [KanaFolder].
func ToHiragana(s string, aggressive bool) string {
	res, _, err := transform.String(&KanaFolder{Aggressive: aggressive}, s)
	if err != nil {
		return s
	}
	return res
}
