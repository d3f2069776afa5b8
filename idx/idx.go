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

package idx

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/versusvoid/rikaikun/internal/index"
)

var (
	// ErrUnsorted indicates entries written out of order.
	ErrUnsorted = errors.New("idx entries out of order")

	// ErrInvalidKey indicates an empty key or a key containing a null byte.
	ErrInvalidKey = errors.New("invalid idx key")
)

// Entry is an .idx file entry.
type Entry struct {
	Key    string
	Offset uint32
	Flags  uint32
}

// Compare orders entries by key and then by offset.
func Compare(a, b *Entry) int {
	if c := strings.Compare(a.Key, b.Key); c != 0 {
		return c
	}
	return cmp.Compare(a.Offset, b.Offset)
}

// Idx is a very basic implementation of an in memory search index.
type Idx struct {
	index *index.Index[*Entry]
}

// New returns a new in-memory index read from r. New takes ownership of r.
func New(r io.ReadCloser) (*Idx, error) {
	s := NewScanner(r)
	defer s.Close()

	var entries []*Entry
	for s.Scan() {
		entries = append(entries, s.Entry())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return &Idx{
		index: index.New(entries, entryKey, strings.Compare),
	}, nil
}

func entryKey(e *Entry) string {
	return e.Key
}

// Search performs a query of the index and returns matching entries in offset
// order.
func (idx *Idx) Search(query string) []*Entry {
	return idx.index.Search(query)
}

// Len returns the number of entries in the index.
func (idx *Idx) Len() int {
	return idx.index.Len()
}

// Writer writes sorted .idx entries.
type Writer struct {
	w    io.Writer
	last *Entry
	keys int
	size int64
}

// NewWriter returns a new Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes e. Entries must be written in Compare order without
// duplicates.
func (w *Writer) Write(e *Entry) error {
	if e.Key == "" || strings.IndexByte(e.Key, 0) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidKey, e.Key)
	}
	if w.last != nil && Compare(w.last, e) >= 0 {
		return fmt.Errorf("%w: %q@%d after %q@%d", ErrUnsorted, e.Key, e.Offset, w.last.Key, w.last.Offset)
	}

	b := make([]byte, 0, len(e.Key)+1+entryTailSize)
	b = append(b, e.Key...)
	b = append(b, 0)
	b = binary.BigEndian.AppendUint32(b, e.Offset)
	b = binary.BigEndian.AppendUint32(b, e.Flags)
	n, err := w.w.Write(b)
	w.size += int64(n)
	if err != nil {
		return fmt.Errorf("writing idx: %w", err)
	}

	if w.last == nil || w.last.Key != e.Key {
		w.keys++
	}
	last := *e
	w.last = &last
	return nil
}

// Size returns the number of bytes written.
func (w *Writer) Size() int64 {
	return w.size
}

// KeyCount returns the number of distinct keys written.
func (w *Writer) KeyCount() int {
	return w.keys
}
