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

// Package jmdict implements streaming JMdict and JMnedict XML files.
//
// Tag values such as parts of speech are XML entities declared in the
// document type definition, e.g. <!ENTITY n "noun (common) (futsuumeishi)">.
// The Scanner expands them while parsing and maps the expansion back to the
// entity name, so entries carry "n" rather than the description.
package jmdict

import (
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/versusvoid/rikaikun/compiler"
	"github.com/versusvoid/rikaikun/entry"
)

// ErrDuplicateEntity indicates two entities with the same expansion.
var ErrDuplicateEntity = errors.New("duplicate entity text")

var entityDecl = regexp.MustCompile(`<!ENTITY\s+(\S+)\s+"([^"]*)"\s*>`)

// Scanner scans a JMdict or JMnedict file entry by entry.
type Scanner struct {
	r io.Closer
	d *xml.Decoder

	entities entry.Entities
	entry    entry.Entry
	err      error
}

// NewScanner returns a new Scanner reading XML from r. The Scanner assumes
// ownership of the reader and should be closed with the Close method.
func NewScanner(r io.ReadCloser) *Scanner {
	return &Scanner{
		r:        r,
		d:        xml.NewDecoder(r),
		entities: entry.Entities{},
	}
}

// Open opens the XML file at path. Files ending in .gz are decompressed.
func Open(path string) (*Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	if strings.ToLower(filepath.Ext(path)) != ".gz" {
		return NewScanner(f), nil
	}

	z, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return NewScanner(&gzipFile{Reader: z, f: f}), nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.f.Close())
}

// Scan advances to the next entry. It returns false at the end of the file or
// on error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	s.entry = nil

	for {
		tok, err := s.d.Token()
		if errors.Is(err, io.EOF) {
			return false
		}
		if err != nil {
			s.err = fmt.Errorf("parsing xml: %w", err)
			return false
		}

		switch t := tok.(type) {
		case xml.Directive:
			if err := s.readDoctype(t); err != nil {
				s.err = err
				return false
			}
		case xml.StartElement:
			if t.Name.Local != elemEntry {
				continue
			}
			e, err := s.readEntry()
			if err != nil {
				s.err = err
				return false
			}
			s.entry = e
			return true
		}
	}
}

// Entry returns the current entry.
func (s *Scanner) Entry() entry.Entry {
	return s.entry
}

// Entities returns the entity expansions read so far mapped to entity names.
func (s *Scanner) Entities() entry.Entities {
	return s.entities
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	return s.err
}

// Close closes the underlying reader.
func (s *Scanner) Close() error {
	if err := s.r.Close(); err != nil {
		return fmt.Errorf("closing jmdict file: %w", err)
	}
	return nil
}

// readDoctype reads entity declarations from a DOCTYPE directive.
func (s *Scanner) readDoctype(dir xml.Directive) error {
	if !bytes.HasPrefix(dir, []byte("DOCTYPE")) {
		return nil
	}

	expansions := map[string]string{}
	for _, m := range entityDecl.FindAllSubmatch(dir, -1) {
		name, text := string(m[1]), string(m[2])
		if prev, ok := s.entities[text]; ok && prev != name {
			return fmt.Errorf("%w: %q and %q expand to %q", ErrDuplicateEntity, prev, name, text)
		}
		s.entities[text] = name
		expansions[name] = text
	}
	s.d.Entity = expansions
	return nil
}

// readEntry reads the children of an <entry> element through its end tag.
func (s *Scanner) readEntry() (entry.Entry, error) {
	b := entry.NewBuilder(s.entities)
	id := 0
	for {
		tok, err := s.d.Token()
		if err != nil {
			return nil, &entry.Error{ID: id, Field: "entry", Err: fmt.Errorf("parsing xml: %w", err)}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el, err := s.decodeChild(&t)
			if err != nil {
				return nil, &entry.Error{ID: id, Field: t.Name.Local, Err: err}
			}
			if seq, ok := el.(entry.IDElement); ok {
				id, _ = strconv.Atoi(seq.Seq)
			}
			if err := b.Add(el); err != nil {
				return nil, err
			}
		case xml.EndElement:
			return b.Finish()
		}
	}
}

// decodeChild decodes one child element of <entry>.
func (s *Scanner) decodeChild(start *xml.StartElement) (entry.Element, error) {
	switch start.Name.Local {
	case elemSeq:
		var seq string
		if err := s.d.DecodeElement(&seq, start); err != nil {
			return nil, fmt.Errorf("decoding: %w", err)
		}
		return entry.IDElement{Seq: strings.TrimSpace(seq)}, nil
	case elemKanji:
		var k kanjiXML
		if err := s.d.DecodeElement(&k, start); err != nil {
			return nil, fmt.Errorf("decoding: %w", err)
		}
		return k.element(), nil
	case elemReading:
		var r readingXML
		if err := s.d.DecodeElement(&r, start); err != nil {
			return nil, fmt.Errorf("decoding: %w", err)
		}
		return r.element(), nil
	case elemSense:
		var sense senseXML
		if err := s.d.DecodeElement(&sense, start); err != nil {
			return nil, fmt.Errorf("decoding: %w", err)
		}
		return sense.element(), nil
	case elemTrans:
		var t transXML
		if err := s.d.DecodeElement(&t, start); err != nil {
			return nil, fmt.Errorf("decoding: %w", err)
		}
		return t.element(), nil
	default:
		return nil, fmt.Errorf("%w: unknown element <%s>", entry.ErrStructure, start.Name.Local)
	}
}

// File is a JMdict or JMnedict file that can be scanned any number of times.
type File string

// Open implements compiler.Source.
func (f File) Open() (compiler.Scanner, error) {
	s, err := Open(string(f))
	if err != nil {
		return nil, err
	}
	return s, nil
}
