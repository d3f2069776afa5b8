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

package dict

// MakeDict creates an uncompressed test .dict file and returns it with the
// offset of each record.
func MakeDict(records []string) ([]byte, []uint32) {
	b := []byte{}
	offsets := make([]uint32, 0, len(records))
	for _, r := range records {
		//nolint:gosec // test data is small.
		offsets = append(offsets, uint32(len(b)))
		b = append(b, r...)
		b = append(b, '\n')
	}
	return b, offsets
}
