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

// TestScanner tests Scanner.
func TestScanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []byte
		expected []*idx.Entry
		err      error
	}{
		{
			name: "multi",
			data: testutil.MakeIndex([]*idx.Entry{
				{Key: "こうひい", Offset: 123, Flags: 0},
				{Key: "珈琲", Offset: 12, Flags: 1 << 3},
			}),
			expected: []*idx.Entry{
				{Key: "こうひい", Offset: 123, Flags: 0},
				{Key: "珈琲", Offset: 12, Flags: 1 << 3},
			},
		},
		{
			name:     "empty",
			data:     nil,
			expected: nil,
		},
		{
			name: "truncated",
			data: append(testutil.MakeIndex([]*idx.Entry{
				{Key: "hoge", Offset: 1},
			}), "fuga\x00\x00\x00"...),
			expected: []*idx.Entry{
				{Key: "hoge", Offset: 1},
			},
			err: idx.ErrTruncated,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s := idx.NewScanner(io.NopCloser(bytes.NewReader(test.data)))
			defer s.Close()

			var entries []*idx.Entry
			for s.Scan() {
				entries = append(entries, s.Entry())
			}
			if diff := cmp.Diff(test.err, s.Err(), cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("Err (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.expected, entries); diff != "" {
				t.Fatalf("Entry (-want, +got):\n%s", diff)
			}
		})
	}
}
