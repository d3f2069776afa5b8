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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/text/transform"
)

func TestToHiragana(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		aggressive bool

		expected string
	}{
		{
			name:     "katakana",
			input:    "カタカナ",
			expected: "かたかな",
		},
		{
			name:     "small and ke",
			input:    "ヴァヶ",
			expected: "ゔぁゖ",
		},
		{
			name:     "long vowel a row",
			input:    "カード",
			expected: "かあど",
		},
		{
			name:     "long vowel e and o rows",
			input:    "セーター",
			expected: "せいたあ",
		},
		{
			name:     "long vowel o row",
			input:    "コーヒー",
			expected: "こうひい",
		},
		{
			name:     "long vowel after small kana",
			input:    "ァー",
			expected: "ぁー",
		},
		{
			name:     "leading long vowel",
			input:    "ーあ",
			expected: "ーあ",
		},
		{
			name:     "long vowel after n",
			input:    "ンー",
			expected: "んー",
		},
		{
			name:     "mixed text",
			input:    "お茶とコーラ",
			expected: "お茶とこうら",
		},
		{
			name:     "loose keeps particles",
			input:    "こんにちは",
			expected: "こんにちは",
		},
		{
			name:       "aggressive particles",
			input:      "こんにちは",
			aggressive: true,
			expected:   "こんにちわ",
		},
		{
			name:       "aggressive o row",
			input:      "ぶっとおし",
			aggressive: true,
			expected:   "ぶっとうし",
		},
		{
			name:       "aggressive e row",
			input:      "ねえさん",
			aggressive: true,
			expected:   "ねいさん",
		},
		{
			name:       "aggressive wo and dzu",
			input:      "ヲヅ",
			aggressive: true,
			expected:   "おず",
		},
		{
			name:       "aggressive long vowel after folded wo",
			input:      "をー",
			aggressive: true,
			expected:   "おう",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, ToHiragana(test.input, test.aggressive)); diff != "" {
				t.Fatalf("ToHiragana (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestKanaFolder_shortDst(t *testing.T) {
	t.Parallel()

	f := &KanaFolder{}
	dst := make([]byte, 4)
	nDst, nSrc, err := f.Transform(dst, []byte("カナ"), true)
	if diff := cmp.Diff(transform.ErrShortDst, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("err (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(3, nDst); diff != "" {
		t.Fatalf("nDst (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(3, nSrc); diff != "" {
		t.Fatalf("nSrc (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff("か", string(dst[:nDst])); diff != "" {
		t.Fatalf("dst (-want, +got):\n%s", diff)
	}
}

func TestKanaFolder_shortSrc(t *testing.T) {
	t.Parallel()

	f := &KanaFolder{}
	src := []byte("カナ")[:4]
	dst := make([]byte, 10)
	nDst, nSrc, err := f.Transform(dst, src, false)
	if diff := cmp.Diff(transform.ErrShortSrc, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("err (-want, +got):\n%s", diff)
	}
	if nDst != 3 || nSrc != 3 {
		t.Fatalf("want nDst=3 nSrc=3, got nDst=%d nSrc=%d", nDst, nSrc)
	}
}

func TestFoldSpace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "leading and trailing",
			input:    " \t　foo\n ",
			expected: "foo",
		},
		{
			name:     "internal spans",
			input:    "foo \t　 bar\n\nbaz",
			expected: "foo bar baz",
		},
		{
			name:     "no whitespace",
			input:    "to walk",
			expected: "to walk",
		},
		{
			name:     "all whitespace",
			input:    " \t\n",
			expected: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, FoldSpace(test.input)); diff != "" {
				t.Fatalf("FoldSpace (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestSpaceFolder_shortDst(t *testing.T) {
	t.Parallel()

	w := &SpaceFolder{}
	dst := make([]byte, 3)
	nDst, nSrc, err := w.Transform(dst, []byte("foo bar"), true)
	if diff := cmp.Diff(transform.ErrShortDst, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("err (-want, +got):\n%s", diff)
	}
	if nDst != 3 || nSrc != 4 {
		t.Fatalf("want nDst=3 nSrc=4, got nDst=%d nSrc=%d", nDst, nSrc)
	}
}
