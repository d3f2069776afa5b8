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

package ifo

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// TestIfo tests Ifo
func TestIfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		expect func(*testing.T, *Ifo)
		err    error
	}{
		{
			name: "magic and version",
			data: `test magic
version=1.0.0`,
			expect: func(t *testing.T, i *Ifo) {
				t.Helper()
				if want, got := "test magic", i.Magic(); want != got {
					t.Fatalf("magic; want: %q, got: %q", want, got)
				}
				if want, got := "1.0.0", i.Value("version"); want != got {
					t.Fatalf("version; want: %q, got: %q", want, got)
				}
			},
		},
		{
			name: "options",
			data: "test magic\nversion=1\nbookname = JMdict \n\nkeycount=12\n",
			expect: func(t *testing.T, i *Ifo) {
				t.Helper()
				if want, got := "JMdict", i.Value("bookname"); want != got {
					t.Fatalf("bookname; want: %q, got: %q", want, got)
				}
				if want, got := "12", i.Value("keycount"); want != got {
					t.Fatalf("keycount; want: %q, got: %q", want, got)
				}
				if want, got := "", i.Value("author"); want != got {
					t.Fatalf("author; want: %q, got: %q", want, got)
				}
			},
		},
		{
			name: "missing version",
			data: `test magic`,
			err:  ErrMissingVersion,
		},
		{
			name: "version not first",
			data: "test magic\nbookname=x\nversion=1",
			err:  ErrMissingVersion,
		},
		{
			name: "invalid line",
			data: "test magic\nversion=1\nbookname",
			err:  ErrInvalidLine,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			i, err := New(bytes.NewReader([]byte(test.data)))
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("New (-want, +got):\n%s", diff)
			}
			if test.expect != nil {
				test.expect(t, i)
			}
		})
	}
}

// TestWrite tests Write.
func TestWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Write(&buf, "test magic", "1", []Option{
		{Key: "bookname", Value: "JMdict"},
		{Key: "recordcount", Value: "2"},
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := "test magic\nversion=1\nbookname=JMdict\nrecordcount=2\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("Write (-want, +got):\n%s", diff)
	}

	i, err := New(&buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if want, got := "2", i.Value("recordcount"); want != got {
		t.Fatalf("recordcount; want: %q, got: %q", want, got)
	}

	err = Write(&buf, "m", "1", []Option{{Key: "bad\nkey", Value: "x"}})
	if diff := cmp.Diff(ErrInvalidLine, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("Write (-want, +got):\n%s", diff)
	}
}
