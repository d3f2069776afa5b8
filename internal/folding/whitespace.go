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

// Package folding implements text transformers used to normalize dictionary
// text and lookup keys.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// SpaceFolder trims leading and trailing whitespace and replaces each
// internal whitespace span, including tabs and newlines, with a single ASCII
// space. The output never contains a tab or a newline.
type SpaceFolder struct {
	// started is true after the first non-space rune.
	started bool

	// pending is true while inside an internal whitespace span.
	pending bool
}

// Transform implements [transform.Transformer.Transform].
func (w *SpaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		c, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(c) {
			nSrc += size
			w.pending = w.started
			continue
		}

		// NOTE: utf8.RuneLen is used because c may be utf8.RuneError with a
		// size of 1.
		need := utf8.RuneLen(c)
		if w.pending {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if w.pending {
			dst[nDst] = ' '
			nDst++
			w.pending = false
		}
		nDst += utf8.EncodeRune(dst[nDst:], c)
		nSrc += size
		w.started = true
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *SpaceFolder) Reset() {
	*w = SpaceFolder{}
}

// FoldSpace returns s folded with a [SpaceFolder].
func FoldSpace(s string) string {
	res, _, err := transform.String(&SpaceFolder{}, s)
	if err != nil {
		return s
	}
	return res
}
