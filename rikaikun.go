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

package rikaikun

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/versusvoid/rikaikun/compiler"
	"github.com/versusvoid/rikaikun/dict"
	"github.com/versusvoid/rikaikun/idx"
	"github.com/versusvoid/rikaikun/ifo"
	"github.com/versusvoid/rikaikun/internal/folding"
)

const (
	ifoMagic = "rikaikun dictionary ifo file"

	// Version is the container format version written to .ifo files.
	Version = "1.0.0"
)

var (
	// ErrBadMagic indicates an .ifo file with an unexpected magic line.
	ErrBadMagic = errors.New("bad magic data")

	// ErrInvalidInfo indicates a missing or malformed .ifo value.
	ErrInvalidInfo = errors.New("invalid dictionary info")

	// ErrOffsetMismatch indicates a corpus whose index disagrees with the
	// record offsets.
	ErrOffsetMismatch = errors.New("record offset mismatch")
)

// Dictionary is a compiled dictionary.
type Dictionary struct {
	ifo  *ifo.Ifo
	idx  *idx.Idx
	dict *dict.Dict

	ifoPath string

	version         string
	bookname        string
	recordcount     int64
	keycount        int64
	idxfilesize     int64
	minentryid      int64
	maxreadingindex int64
}

// Result is a record found by a search.
type Result struct {
	// Key is the index key the record was found under.
	Key string

	// Offset is the offset of the record in the .dict file.
	Offset uint32

	// Flags are the part-of-speech flags of the index entry.
	Flags uint32

	// Record is the encoded record without its newline.
	Record []byte
}

// OpenAll opens all dictionaries under a directory. This function will return
// all successfully opened dictionaries along with any errors that occurred.
func OpenAll(path string) ([]*Dictionary, []error) {
	var dicts []*Dictionary
	var errs []error
	if err := filepath.WalkDir(path, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(info.Name()), ".ifo") {
			d, err := Open(path)
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			dicts = append(dicts, d)
		}
		return nil
	}); err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	return dicts, errs
}

// Open opens a dictionary from the given .ifo file path. The .idx and .dict
// files are opened on first use.
func Open(path string) (*Dictionary, error) {
	d := &Dictionary{
		ifoPath: path,
	}

	if ext := filepath.Ext(path); !strings.EqualFold(ext, ".ifo") {
		return nil, fmt.Errorf("bad extension: %v", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	d.ifo, err = ifo.New(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	if d.ifo.Magic() != ifoMagic {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, path)
	}

	d.version = d.ifo.Value("version")
	if d.version != Version {
		return nil, fmt.Errorf("%w: version %q", ErrInvalidInfo, d.version)
	}

	d.bookname = d.ifo.Value("bookname")
	if d.bookname == "" {
		return nil, fmt.Errorf("%w: missing bookname", ErrInvalidInfo)
	}

	for _, v := range []struct {
		key string
		dst *int64
	}{
		{"recordcount", &d.recordcount},
		{"keycount", &d.keycount},
		{"idxfilesize", &d.idxfilesize},
		{"minentryid", &d.minentryid},
		{"maxreadingindex", &d.maxreadingindex},
	} {
		*v.dst, err = strconv.ParseInt(d.ifo.Value(v.key), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad %s: %w", ErrInvalidInfo, v.key, err)
		}
	}

	return d, nil
}

// Bookname returns the dictionary name.
func (d *Dictionary) Bookname() string {
	return d.bookname
}

// Version returns the dictionary format version.
func (d *Dictionary) Version() string {
	return d.version
}

// RecordCount returns the number of records.
func (d *Dictionary) RecordCount() int64 {
	return d.recordcount
}

// KeyCount returns the number of distinct index keys.
func (d *Dictionary) KeyCount() int64 {
	return d.keycount
}

// MinEntryID returns the id subtracted from the entry ids in records.
func (d *Dictionary) MinEntryID() int64 {
	return d.minentryid
}

// MaxReadingIndex returns the largest reading position in any kanji group,
// or -1.
func (d *Dictionary) MaxReadingIndex() int64 {
	return d.maxreadingindex
}

// Search returns the records indexed under query. If there are none, the
// query is converted to hiragana and searched again.
func (d *Dictionary) Search(query string) ([]*Result, error) {
	index, err := d.Index()
	if err != nil {
		return nil, err
	}
	records, err := d.Dict()
	if err != nil {
		return nil, err
	}

	key := query
	entries := index.Search(key)
	if h := folding.ToHiragana(query, true); len(entries) == 0 && h != query {
		key = h
		entries = index.Search(key)
	}

	var results []*Result
	for _, e := range entries {
		rec, err := records.Record(e.Offset)
		if err != nil {
			return nil, err
		}
		results = append(results, &Result{
			Key:    key,
			Offset: e.Offset,
			Flags:  e.Flags,
			Record: rec,
		})
	}
	return results, nil
}

// Index returns an in-memory version of the dictionary's index.
func (d *Dictionary) Index() (*idx.Idx, error) {
	if d.idx != nil {
		return d.idx, nil
	}

	path, err := findPath(d.ifoPath, []string{".idx", ".IDX"})
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	if info.Size() != d.idxfilesize {
		return nil, fmt.Errorf("%w: %q is %d bytes, want %d", ErrInvalidInfo, path, info.Size(), d.idxfilesize)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	// idx.New closes f.
	d.idx, err = idx.New(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return d.idx, nil
}

// Dict returns the dictionary's records.
func (d *Dictionary) Dict() (*dict.Dict, error) {
	if d.dict != nil {
		return d.dict, nil
	}

	path, err := findPath(d.ifoPath, []string{".dict.dz", ".dict", ".DICT", ".DICT.dz", ".DICT.DZ"})
	if err != nil {
		return nil, err
	}
	d.dict, err = dict.Open(path)
	if err != nil {
		return nil, err
	}
	return d.dict, nil
}

// Close closes the dictionary's open files.
func (d *Dictionary) Close() error {
	if d.dict == nil {
		return nil
	}
	return d.dict.Close()
}

func findPath(ifoPath string, exts []string) (string, error) {
	baseName := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))
	for _, ext := range exts {
		path := baseName + ext
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no %s file found for %q", exts[0], ifoPath)
}

// WriteOptions are options for writing a dictionary.
type WriteOptions struct {
	// Bookname is the dictionary name. Defaults to the file name.
	Bookname string

	// DictZip compresses the records into a .dict.dz file. Otherwise they
	// are written to a plain .dict file.
	DictZip bool
}

// DefaultWriteOptions is the default options for Write.
var DefaultWriteOptions = &WriteOptions{
	DictZip: true,
}

// Summary describes a written dictionary.
type Summary struct {
	IfoPath     string
	Records     int
	Keys        int
	IdxFileSize int64
	DictSize    int64
}

// Write writes the corpus c as the .ifo, .idx and .dict files of a
// dictionary named name in dir.
func Write(dir, name string, c *compiler.Corpus, opts *WriteOptions) (*Summary, error) {
	if opts == nil {
		opts = DefaultWriteOptions
	}
	bookname := opts.Bookname
	if bookname == "" {
		bookname = name
	}
	base := filepath.Join(dir, name)

	dictPath := base + ".dict"
	if opts.DictZip {
		dictPath += ".dz"
	}
	if err := writeDict(dictPath, c, opts.DictZip); err != nil {
		return nil, err
	}

	iw, err := writeIdx(base+".idx", c)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		IfoPath:     base + ".ifo",
		Records:     len(c.Records),
		Keys:        iw.KeyCount(),
		IdxFileSize: iw.Size(),
		DictSize:    c.Size,
	}
	options := []ifo.Option{
		{Key: "bookname", Value: bookname},
		{Key: "recordcount", Value: strconv.Itoa(s.Records)},
		{Key: "keycount", Value: strconv.Itoa(s.Keys)},
		{Key: "idxfilesize", Value: strconv.FormatInt(s.IdxFileSize, 10)},
		{Key: "minentryid", Value: strconv.Itoa(c.MinID)},
		{Key: "maxreadingindex", Value: strconv.Itoa(c.MaxReadingIndex)},
	}
	err = writeFile(s.IfoPath, func(f *os.File) error {
		return ifo.Write(f, ifoMagic, Version, options)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func writeDict(path string, c *compiler.Corpus, dictzip bool) error {
	return writeFile(path, func(f *os.File) error {
		w, err := dict.NewWriter(f, &dict.WriterOptions{DictZip: dictzip})
		if err != nil {
			return err
		}
		var want int64
		for _, rec := range c.Records {
			off, err := w.Write(rec)
			if err != nil {
				return err
			}
			if int64(off) != want {
				return fmt.Errorf("%w: record at %d, want %d", ErrOffsetMismatch, off, want)
			}
			want += int64(len(rec)) + 1
		}
		if want != c.Size {
			return fmt.Errorf("%w: size %d, want %d", ErrOffsetMismatch, want, c.Size)
		}
		return w.Close()
	})
}

func writeIdx(path string, c *compiler.Corpus) (*idx.Writer, error) {
	keys := make([]string, 0, len(c.Index))
	for k := range c.Index {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var iw *idx.Writer
	err := writeFile(path, func(f *os.File) error {
		iw = idx.NewWriter(f)
		for _, k := range keys {
			for _, o := range c.Index[k] {
				if int64(o.Offset) >= c.Size {
					return fmt.Errorf("%w: key %q at %d past end %d", ErrOffsetMismatch, k, o.Offset, c.Size)
				}
				if err := iw.Write(&idx.Entry{Key: k, Offset: o.Offset, Flags: o.Flags}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return iw, nil
}

// writeFile creates path and calls fn with it. The file is closed afterwards.
func writeFile(path string, fn func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", path, err)
	}
	return nil
}
