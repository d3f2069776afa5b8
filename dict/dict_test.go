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

package dict_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/versusvoid/rikaikun/dict"
)

var records = []string{
	"生;生るU,成るU#0\tなる;なまU\tv5r;to become\t3",
	"ゆっくり\tadv;slowly\t0",
	strings.Repeat("長", 400) + "\tながい\tadj-i;long\t1",
}

// TestDict_Record tests Dict.Record.
func TestDict_Record(t *testing.T) {
	t.Parallel()

	b, offsets := dict.MakeDict(records)
	d := dict.New(bytes.NewReader(b))

	for i, want := range records {
		got, err := d.Record(offsets[i])
		if err != nil {
			t.Fatalf("Record(%d): %v", offsets[i], err)
		}
		if diff := cmp.Diff(want, string(got)); diff != "" {
			t.Errorf("Record(%d) (-want, +got):\n%s", offsets[i], diff)
		}
	}
}

// TestDict_Record_unterminated tests reading past the last record.
func TestDict_Record_unterminated(t *testing.T) {
	t.Parallel()

	d := dict.New(bytes.NewReader([]byte("no newline")))
	_, err := d.Record(0)
	if diff := cmp.Diff(dict.ErrUnterminated, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("Record (-want, +got):\n%s", diff)
	}

	_, err = d.Record(1000)
	if diff := cmp.Diff(dict.ErrUnterminated, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("Record (-want, +got):\n%s", diff)
	}
}

// TestWriter tests writing and reading back a dictionary.
func TestWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ext  string
		opts *dict.WriterOptions
	}{
		{
			name: "plain",
			ext:  ".dict",
			opts: &dict.WriterOptions{},
		},
		{
			name: "dictzip",
			ext:  ".dict.dz",
			opts: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "test"+test.ext)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			w, err := dict.NewWriter(f, test.opts)
			if err != nil {
				t.Fatalf("NewWriter: %v", err)
			}

			_, wantOffsets := dict.MakeDict(records)
			var offsets []uint32
			for _, r := range records {
				off, err := w.Write([]byte(r))
				if err != nil {
					t.Fatalf("Write: %v", err)
				}
				offsets = append(offsets, off)
			}
			if diff := cmp.Diff(wantOffsets, offsets); diff != "" {
				t.Fatalf("Write offsets (-want, +got):\n%s", diff)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatal(err)
			}

			d, err := dict.Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer d.Close()

			for i, want := range records {
				got, err := d.Record(offsets[i])
				if err != nil {
					t.Fatalf("Record(%d): %v", offsets[i], err)
				}
				if diff := cmp.Diff(want, string(got)); diff != "" {
					t.Errorf("Record(%d) (-want, +got):\n%s", offsets[i], diff)
				}
			}
		})
	}
}

// TestWriter_newline tests that records containing newlines are rejected.
func TestWriter_newline(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, err := dict.NewWriter(&buf, &dict.WriterOptions{})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	_, err = w.Write([]byte("a\nb"))
	if diff := cmp.Diff(dict.ErrNewline, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("Write (-want, +got):\n%s", diff)
	}
	if got, want := w.Offset(), int64(0); got != want {
		t.Fatalf("Offset: want: %d, got: %d", want, got)
	}
}
