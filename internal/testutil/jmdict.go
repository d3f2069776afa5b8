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
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Entity is an entity declaration.
type Entity struct {
	Name string
	Text string
}

// DefaultEntities are the entities declared when none are given.
var DefaultEntities = []Entity{
	{"adj-i", "adjective (keiyoushi)"},
	{"adv", "adverb (fukushi)"},
	{"arch", "archaic"},
	{"ik", "word containing irregular kana usage"},
	{"n", "noun (common) (futsuumeishi)"},
	{"uk", "word usually written using kana alone"},
	{"v1", "Ichidan verb"},
	{"v5r", "Godan verb with 'ru' ending"},
	{"vt", "transitive verb"},
	{"given", "given name or forename, gender not specified"},
	{"masc", "male given name or forename"},
	{"place", "place name"},
	{"surname", "family or surname"},
}

// JMdictOptions are options for making a test JMdict file.
type JMdictOptions struct {
	// Root is the root element name. Defaults to "JMdict".
	Root string

	// Entities are the declared entities. Defaults to DefaultEntities.
	Entities []Entity

	// Gzip indicates that the file should be compressed with gzip.
	Gzip bool
}

func (o *JMdictOptions) getRoot() string {
	if o != nil && o.Root != "" {
		return o.Root
	}
	return "JMdict"
}

func (o *JMdictOptions) getEntities() []Entity {
	if o != nil && o.Entities != nil {
		return o.Entities
	}
	return DefaultEntities
}

// MakeJMdict creates a test JMdict document from the XML of its entries.
func MakeJMdict(entries []string, opts *JMdictOptions) []byte {
	root := opts.getRoot()

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&b, "<!DOCTYPE %s [\n", root)
	fmt.Fprintf(&b, "<!ELEMENT %s (entry*)>\n", root)
	b.WriteString("<!-- entities -->\n")
	for _, e := range opts.getEntities() {
		fmt.Fprintf(&b, "<!ENTITY %s \"%s\">\n", e.Name, e.Text)
	}
	b.WriteString("]>\n")
	fmt.Fprintf(&b, "<%s>\n", root)
	for _, e := range entries {
		b.WriteString("<entry>\n")
		b.WriteString(e)
		b.WriteString("\n</entry>\n")
	}
	fmt.Fprintf(&b, "</%s>\n", root)
	return []byte(b.String())
}

// MakeTempJMdict writes a test JMdict file to a temporary directory and
// returns its path.
func MakeTempJMdict(t *testing.T, entries []string, opts *JMdictOptions) string {
	t.Helper()

	name := "JMdict.xml"
	if opts != nil && opts.Gzip {
		name += ".gz"
	}
	path := filepath.Join(t.TempDir(), name)

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	d := MakeJMdict(entries, opts)
	if opts != nil && opts.Gzip {
		z := gzip.NewWriter(f)
		if _, err := z.Write(d); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	} else {
		if _, err := f.Write(d); err != nil {
			t.Fatal(err)
		}
	}

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}
