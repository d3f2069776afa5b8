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

package entry

import (
	"fmt"
	"strconv"
)

// Kind is the kind of an entry child element.
type Kind int

const (
	// KindID is the entry sequence number element.
	KindID Kind = iota + 1

	// KindKanji is a kanji spelling element.
	KindKanji

	// KindReading is a reading element.
	KindReading

	// KindSense is a sense element of a word.
	KindSense

	// KindTrans is a translation element of a name.
	KindTrans
)

func (k Kind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindKanji:
		return "kanji"
	case KindReading:
		return "reading"
	case KindSense:
		return "sense"
	case KindTrans:
		return "trans"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Element is an unprocessed child element of an entry. Tag values are entity
// texts that are resolved by the Builder's Resolver. Restrictions name kanji
// spellings or readings by their text.
type Element interface {
	Kind() Kind
}

// IDElement holds the entry sequence number.
type IDElement struct {
	Seq string
}

// Kind implements [Element.Kind].
func (IDElement) Kind() Kind { return KindID }

// KanjiElement is a kanji spelling.
type KanjiElement struct {
	Text     string
	Inf      []string
	Priority []string
}

// Kind implements [Element.Kind].
func (KanjiElement) Kind() Kind { return KindKanji }

// ReadingElement is a kana reading.
type ReadingElement struct {
	Text        string
	NoKanji     bool
	Restriction []string
	Inf         []string
	Priority    []string
}

// Kind implements [Element.Kind].
func (ReadingElement) Kind() Kind { return KindReading }

// SenseElement is a sense. An empty POS continues the current sense group.
type SenseElement struct {
	KanjiRestriction   []string
	ReadingRestriction []string
	POS                []string
	Misc               []string
	LSource            []string
	Dialect            []string
	Info               []string
	Glosses            []string
}

// Kind implements [Element.Kind].
func (SenseElement) Kind() Kind { return KindSense }

// TransElement is a translation of a name.
type TransElement struct {
	Types   []string
	Glosses []string
}

// Kind implements [Element.Kind].
func (TransElement) Kind() Kind { return KindTrans }

// Resolver resolves entity texts to their abbreviations.
type Resolver interface {
	Resolve(text string) (string, error)
}

// Entities maps entity texts to entity names, e.g.
// "noun (common) (futsuumeishi)" to "n".
type Entities map[string]string

// Resolve implements [Resolver.Resolve].
func (e Entities) Resolve(text string) (string, error) {
	if name, ok := e[text]; ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEntity, text)
}

type state int

const (
	stateStart state = iota
	stateID
	stateKanji
	stateReading
	stateSense
	stateTrans
	stateDone
)

// transitions lists the valid element kinds for each state and the state
// they lead to.
var transitions = map[state]map[Kind]state{
	stateStart:   {KindID: stateID},
	stateID:      {KindKanji: stateKanji, KindReading: stateReading},
	stateKanji:   {KindKanji: stateKanji, KindReading: stateReading},
	stateReading: {KindReading: stateReading, KindSense: stateSense, KindTrans: stateTrans},
	stateSense:   {KindSense: stateSense},
	stateTrans:   {KindTrans: stateTrans},
}

// Builder builds a single entry from its child elements in document order.
// A Builder is used for one entry only.
type Builder struct {
	resolver Resolver
	state    state

	forms   Forms
	groups  []SenseGroup
	group   *SenseGroup
	senses  int
	transes []Trans

	// kanjiPos and readingPos map texts to positions for restriction
	// lookups during this build.
	kanjiPos   map[string]int
	readingPos map[string]int
}

// NewBuilder returns a new Builder that resolves tags with r.
func NewBuilder(r Resolver) *Builder {
	return &Builder{
		resolver:   r,
		kanjiPos:   map[string]int{},
		readingPos: map[string]int{},
	}
}

// Build builds an entry from elems.
func Build(elems []Element, r Resolver) (Entry, error) {
	b := NewBuilder(r)
	for _, el := range elems {
		if err := b.Add(el); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

// Add adds the next child element.
func (b *Builder) Add(el Element) error {
	next, ok := transitions[b.state][el.Kind()]
	if !ok {
		return b.errorf("", "%w: unexpected %v element after %v", ErrStructure, el.Kind(), b.state)
	}

	var err error
	switch el := el.(type) {
	case IDElement:
		err = b.addID(el)
	case KanjiElement:
		err = b.addKanji(el)
	case ReadingElement:
		err = b.addReading(el)
	case SenseElement:
		err = b.addSense(el)
	case TransElement:
		err = b.addTrans(el)
	default:
		err = b.errorf("", "%w: unsupported element %T", ErrStructure, el)
	}
	if err != nil {
		return err
	}

	b.state = next
	return nil
}

// Finish closes the open sense group and returns the entry.
func (b *Builder) Finish() (Entry, error) {
	state := b.state
	b.state = stateDone
	b.kanjiPos = nil
	b.readingPos = nil

	switch state {
	case stateSense:
		b.groups = append(b.groups, *b.group)
		b.group = nil
		return &Word{
			Forms:       b.forms,
			SenseGroups: b.groups,
		}, nil
	case stateTrans:
		return &Name{
			Forms:   b.forms,
			Transes: b.transes,
		}, nil
	case stateDone:
		return nil, b.errorf("", "%w: entry already finished", ErrStructure)
	default:
		return nil, b.errorf("", "%w: entry ended after %v", ErrStructure, state)
	}
}

func (b *Builder) addID(el IDElement) error {
	id, err := strconv.Atoi(el.Seq)
	if err != nil {
		return b.errorf("id", "%w: bad sequence number %q", ErrStructure, el.Seq)
	}
	b.forms.ID = id
	return nil
}

func (b *Builder) addKanji(el KanjiElement) error {
	field := fmt.Sprintf("kanji[%d]", len(b.forms.Kanjis))
	inf, err := b.resolveAll(el.Inf, field+".inf")
	if err != nil {
		return err
	}

	b.kanjiPos[el.Text] = len(b.forms.Kanjis)
	b.forms.Kanjis = append(b.forms.Kanjis, Kanji{
		Text:   el.Text,
		Inf:    inf,
		Common: len(el.Priority) > 0,
	})
	return nil
}

func (b *Builder) addReading(el ReadingElement) error {
	field := fmt.Sprintf("reading[%d]", len(b.forms.Readings))
	restriction, err := b.positions(el.Restriction, b.kanjiPos, field+".restriction")
	if err != nil {
		return err
	}
	inf, err := b.resolveAll(el.Inf, field+".inf")
	if err != nil {
		return err
	}

	b.readingPos[el.Text] = len(b.forms.Readings)
	b.forms.Readings = append(b.forms.Readings, Reading{
		Text:             el.Text,
		NoKanji:          el.NoKanji,
		KanjiRestriction: restriction,
		Inf:              inf,
		Common:           len(el.Priority) > 0,
	})
	return nil
}

func (b *Builder) addSense(el SenseElement) error {
	field := fmt.Sprintf("sense[%d]", b.senses)
	b.senses++

	pos, err := b.resolveAll(el.POS, field+".pos")
	if err != nil {
		return err
	}
	if len(pos) == 0 {
		if b.group == nil {
			return b.errorf(field, "%w: first sense has no part of speech", ErrStructure)
		}
	} else {
		if b.group != nil {
			b.groups = append(b.groups, *b.group)
		}
		b.group = &SenseGroup{POS: pos}
	}

	if len(el.Glosses) == 0 {
		return b.errorf(field, "%w: sense has no glosses", ErrStructure)
	}
	if len(el.Info) > 1 {
		return b.errorf(field+".info", "%w: %d notes", ErrStructure, len(el.Info))
	}

	s := Sense{
		LSource: el.LSource,
		Glosses: el.Glosses,
	}
	if len(el.Info) == 1 {
		s.Info = el.Info[0]
	}
	if s.KanjiRestriction, err = b.positions(el.KanjiRestriction, b.kanjiPos, field+".kanji_restriction"); err != nil {
		return err
	}
	if s.ReadingRestriction, err = b.positions(el.ReadingRestriction, b.readingPos, field+".reading_restriction"); err != nil {
		return err
	}
	if s.Misc, err = b.resolveAll(el.Misc, field+".misc"); err != nil {
		return err
	}
	if s.Dialect, err = b.resolveAll(el.Dialect, field+".dialect"); err != nil {
		return err
	}

	b.group.Senses = append(b.group.Senses, s)
	return nil
}

func (b *Builder) addTrans(el TransElement) error {
	field := fmt.Sprintf("trans[%d]", len(b.transes))
	types, err := b.resolveAll(el.Types, field+".types")
	if err != nil {
		return err
	}
	if len(types) == 0 {
		return b.errorf(field, "%w: translation has no types", ErrStructure)
	}
	if len(el.Glosses) == 0 {
		return b.errorf(field, "%w: translation has no glosses", ErrStructure)
	}

	b.transes = append(b.transes, Trans{
		Types:   types,
		Glosses: el.Glosses,
	})
	return nil
}

// positions resolves restriction texts to positions. It returns nil for an
// empty restriction.
func (b *Builder) positions(names []string, pos map[string]int, field string) ([]int, error) {
	if len(names) == 0 {
		return nil, nil
	}
	res := make([]int, 0, len(names))
	for i, name := range names {
		p, ok := pos[name]
		if !ok {
			return nil, b.errorf(fmt.Sprintf("%s[%d]", field, i), "%w: %q", ErrUnresolvedReference, name)
		}
		res = append(res, p)
	}
	return res, nil
}

// resolveAll resolves entity texts. It returns nil for no texts.
func (b *Builder) resolveAll(texts []string, field string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	res := make([]string, 0, len(texts))
	for i, t := range texts {
		v, err := b.resolver.Resolve(t)
		if err != nil {
			return nil, &Error{ID: b.forms.ID, Field: fmt.Sprintf("%s[%d]", field, i), Err: err}
		}
		res = append(res, v)
	}
	return res, nil
}

func (b *Builder) errorf(field, format string, a ...any) error {
	return &Error{
		ID:    b.forms.ID,
		Field: field,
		Err:   fmt.Errorf(format, a...),
	}
}

func (s state) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateID:
		return "id"
	case stateKanji:
		return "kanji"
	case stateReading:
		return "reading"
	case stateSense:
		return "sense"
	case stateTrans:
		return "trans"
	default:
		return "end"
	}
}
