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

package testutil

import (
	"encoding/binary"

	"github.com/versusvoid/rikaikun/idx"
)

// MakeIndex make a test index given a list of entries. Entries are written in
// the given order.
func MakeIndex(entries []*idx.Entry) []byte {
	b := []byte{}
	for _, e := range entries {
		b = append(b, []byte(e.Key)...)
		b = append(b, 0) // Add the zero byte terminator.
		b = binary.BigEndian.AppendUint32(b, e.Offset)
		b = binary.BigEndian.AppendUint32(b, e.Flags)
	}
	return b
}
