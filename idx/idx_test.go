// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package idx_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/versusvoid/rikaikun/idx"
	"github.com/versusvoid/rikaikun/internal/testutil"
)

// TestIdx_Search tests Idx.Search.
func TestIdx_Search(t *testing.T) {
	t.Parallel()

	entries := []*idx.Entry{
		{Key: "bar", Offset: 0},
		{Key: "bar", Offset: 10, Flags: 2},
		{Key: "baz", Offset: 20},
		{Key: "foo", Offset: 30},
	}

	tests := []struct {
		name     string
		query    string
		entries  []*idx.Entry
		expected []*idx.Entry
	}{
		{
			name:     "empty index",
			query:    "foo",
			entries:  nil,
			expected: nil,
		},
		{
			name:     "no match",
			query:    "hoge",
			entries:  entries,
			expected: nil,
		},
		{
			name:    "multiple match",
			query:   "bar",
			entries: entries,
			expected: []*idx.Entry{
				{Key: "bar", Offset: 0},
				{Key: "bar", Offset: 10, Flags: 2},
			},
		},
		{
			name:     "single match last",
			query:    "foo",
			entries:  entries,
			expected: []*idx.Entry{{Key: "foo", Offset: 30}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			index, err := idx.New(io.NopCloser(bytes.NewReader(testutil.MakeIndex(test.entries))))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got, want := index.Len(), len(test.entries); got != want {
				t.Fatalf("Len: want: %d, got: %d", want, got)
			}
			if diff := cmp.Diff(test.expected, index.Search(test.query)); diff != "" {
				t.Fatalf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestWriter tests Writer.
func TestWriter(t *testing.T) {
	t.Parallel()

	entries := []*idx.Entry{
		{Key: "こうひい", Offset: 0, Flags: 1},
		{Key: "こうひい", Offset: 40},
		{Key: "珈琲", Offset: 0, Flags: 1},
	}

	var buf bytes.Buffer
	w := idx.NewWriter(&buf)
	for _, e := range entries {
		if err := w.Write(e); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	want := testutil.MakeIndex(entries)
	if diff := cmp.Diff(want, buf.Bytes()); diff != "" {
		t.Fatalf("Write (-want, +got):\n%s", diff)
	}
	if got, want := w.Size(), int64(len(want)); got != want {
		t.Fatalf("Size: want: %d, got: %d", want, got)
	}
	if got, want := w.KeyCount(), 2; got != want {
		t.Fatalf("KeyCount: want: %d, got: %d", want, got)
	}
}

// TestWriter_errors tests that Writer rejects invalid input.
func TestWriter_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []*idx.Entry
		err     error
	}{
		{
			name:    "key order",
			entries: []*idx.Entry{{Key: "b"}, {Key: "a"}},
			err:     idx.ErrUnsorted,
		},
		{
			name:    "offset order",
			entries: []*idx.Entry{{Key: "a", Offset: 10}, {Key: "a", Offset: 5}},
			err:     idx.ErrUnsorted,
		},
		{
			name:    "duplicate",
			entries: []*idx.Entry{{Key: "a", Offset: 10}, {Key: "a", Offset: 10, Flags: 1}},
			err:     idx.ErrUnsorted,
		},
		{
			name:    "empty key",
			entries: []*idx.Entry{{Key: ""}},
			err:     idx.ErrInvalidKey,
		},
		{
			name:    "null key",
			entries: []*idx.Entry{{Key: "a\x00b"}},
			err:     idx.ErrInvalidKey,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			w := idx.NewWriter(io.Discard)
			var err error
			for _, e := range test.entries {
				if err = w.Write(e); err != nil {
					break
				}
			}
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("Write (-want, +got):\n%s", diff)
			}
		})
	}
}
