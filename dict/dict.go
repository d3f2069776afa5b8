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

// Package dict implements reading and writing .dict files.
//
// A .dict file holds encoded records, each terminated by a newline ('\n').
// Records are addressed by the byte offset of their first byte. The file can
// be compressed using the dictzip format, which keeps it randomly accessible.
package dict

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"
)

var (
	// ErrNewline indicates a record containing a newline.
	ErrNewline = errors.New("record contains newline")

	// ErrOffsetTooLarge indicates a record offset that does not fit in 32 bits.
	ErrOffsetTooLarge = errors.New("record offset too large")

	// ErrUnterminated indicates a record without a terminating newline.
	ErrUnterminated = errors.New("unterminated record")
)

// readSize is the number of bytes read at a time when looking for the end of
// a record.
const readSize = 256

// Dict represents the records of a compiled dictionary.
type Dict struct {
	r io.ReaderAt
	c io.Closer
}

// New returns a new Dict reading from r.
func New(r io.ReaderAt) *Dict {
	return &Dict{r: r}
}

// Open opens a .dict or .dict.dz file.
func Open(path string) (*Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}

	if strings.ToLower(filepath.Ext(path)) != ".dz" {
		return &Dict{r: f, c: f}, nil
	}

	z, err := dictzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return &Dict{r: z, c: f}, nil
}

// Record returns the record starting at the given offset without its
// terminating newline.
func (d *Dict) Record(offset uint32) ([]byte, error) {
	var rec []byte
	buf := make([]byte, readSize)
	off := int64(offset)
	for {
		n, err := d.r.ReadAt(buf, off)
		if i := bytes.IndexByte(buf[:n], '\n'); i >= 0 {
			return append(rec, buf[:i]...), nil
		}
		rec = append(rec, buf[:n]...)
		off += int64(n)

		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: at offset %d", ErrUnterminated, offset)
		}
		if err != nil {
			return nil, fmt.Errorf("reading dictionary: %w", err)
		}
	}
}

// Close closes the underlying file, if any.
func (d *Dict) Close() error {
	if d.c == nil {
		return nil
	}
	if err := d.c.Close(); err != nil {
		return fmt.Errorf("closing dict file: %w", err)
	}
	return nil
}

// WriterOptions are options for writing a .dict file.
type WriterOptions struct {
	// DictZip indicates that the records should be compressed with dictzip.
	DictZip bool
}

// DefaultWriterOptions is the default options for a Writer.
var DefaultWriterOptions = &WriterOptions{
	DictZip: true,
}

// Writer writes newline terminated records.
type Writer struct {
	w      io.Writer
	z      *dictzip.Writer
	offset int64
}

// NewWriter returns a new Writer writing to w. Close must be called to flush
// compressed data. Closing the Writer does not close w.
func NewWriter(w io.Writer, opts *WriterOptions) (*Writer, error) {
	if opts == nil {
		opts = DefaultWriterOptions
	}

	dw := &Writer{w: w}
	if opts.DictZip {
		z, err := dictzip.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("creating dictzip writer: %w", err)
		}
		dw.w = z
		dw.z = z
	}
	return dw, nil
}

// Write writes rec followed by a newline and returns the offset of rec.
func (w *Writer) Write(rec []byte) (uint32, error) {
	if bytes.IndexByte(rec, '\n') >= 0 {
		return 0, fmt.Errorf("%w: %q", ErrNewline, rec)
	}
	if w.offset > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d", ErrOffsetTooLarge, w.offset)
	}
	offset := uint32(w.offset)

	line := make([]byte, 0, len(rec)+1)
	line = append(line, rec...)
	line = append(line, '\n')
	n, err := w.w.Write(line)
	w.offset += int64(n)
	if err != nil {
		return 0, fmt.Errorf("writing dictionary: %w", err)
	}
	return offset, nil
}

// Offset returns the offset of the next record.
func (w *Writer) Offset() int64 {
	return w.offset
}

// Close flushes any compressed data.
func (w *Writer) Close() error {
	if w.z == nil {
		return nil
	}
	if err := w.z.Close(); err != nil {
		return fmt.Errorf("closing dictzip writer: %w", err)
	}
	return nil
}
