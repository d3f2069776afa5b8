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

// Package ifo implements reading and writing .ifo files.
//
// An .ifo file starts with a magic line followed by key=value lines. The first
// key must be "version".
package ifo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrMissingVersion indicates that the first option is not the version.
	ErrMissingVersion = errors.New("missing version")

	// ErrInvalidLine indicates a line that is not a key=value pair.
	ErrInvalidLine = errors.New("invalid ifo line")
)

const versionKey = "version"

// Ifo is the metadata of a dictionary.
type Ifo struct {
	magic   string
	options map[string]string
}

// New reads an .ifo file from r.
func New(r io.Reader) (*Ifo, error) {
	s := bufio.NewScanner(r)

	i := &Ifo{options: map[string]string{}}
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("reading ifo: %w", err)
		}
		return nil, fmt.Errorf("%w: empty file", ErrMissingVersion)
	}
	i.magic = strings.TrimSpace(s.Text())

	first := true
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLine, line)
		}
		key = strings.TrimSpace(key)
		if first && key != versionKey {
			return nil, fmt.Errorf("%w: first option is %q", ErrMissingVersion, key)
		}
		first = false
		i.options[key] = strings.TrimSpace(value)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading ifo: %w", err)
	}
	if first {
		return nil, ErrMissingVersion
	}

	return i, nil
}

// Magic returns the magic line.
func (i *Ifo) Magic() string {
	return i.magic
}

// Value returns the value of the given option or the empty string.
func (i *Ifo) Value(key string) string {
	return i.options[key]
}

// Option is an .ifo key=value pair.
type Option struct {
	Key   string
	Value string
}

// Write writes an .ifo file with the given magic line, version and options
// in order.
func Write(w io.Writer, magic, version string, options []Option) error {
	var b strings.Builder
	b.WriteString(magic)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s=%s\n", versionKey, version)
	for _, o := range options {
		if o.Key == "" || o.Key == versionKey || strings.ContainsAny(o.Key, "=\n") || strings.ContainsRune(o.Value, '\n') {
			return fmt.Errorf("%w: %q=%q", ErrInvalidLine, o.Key, o.Value)
		}
		fmt.Fprintf(&b, "%s=%s\n", o.Key, o.Value)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing ifo: %w", err)
	}
	return nil
}
