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

package record

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const base62Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ErrInvalidBase62 indicates a malformed base62 number.
var ErrInvalidBase62 = errors.New("invalid base62 number")

// FormatBase62 formats v in base 62, least significant digit first.
func FormatBase62(v uint64) string {
	var b strings.Builder
	for {
		b.WriteByte(base62Alphabet[v%62])
		v /= 62
		if v == 0 {
			break
		}
	}
	return b.String()
}

// ParseBase62 parses a number formatted with FormatBase62.
func ParseBase62(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidBase62)
	}
	var v uint64
	for i := len(s) - 1; i >= 0; i-- {
		d := strings.IndexByte(base62Alphabet, s[i])
		if d < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidBase62, s)
		}
		if v > (math.MaxUint64-uint64(d))/62 {
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalidBase62, s)
		}
		v = v*62 + uint64(d)
	}
	return v, nil
}
