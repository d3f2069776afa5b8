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

package jmdict

import (
	"github.com/versusvoid/rikaikun/entry"
	"github.com/versusvoid/rikaikun/internal/folding"
)

// Child elements of <entry>.
const (
	elemEntry   = "entry"
	elemSeq     = "ent_seq"
	elemKanji   = "k_ele"
	elemReading = "r_ele"
	elemSense   = "sense"
	elemTrans   = "trans"
)

// defaultLang is the language of glosses and loanword sources without an
// xml:lang attribute.
const defaultLang = "eng"

type kanjiXML struct {
	Text     string   `xml:"keb"`
	Inf      []string `xml:"ke_inf"`
	Priority []string `xml:"ke_pri"`
}

func (k *kanjiXML) element() entry.KanjiElement {
	return entry.KanjiElement{
		Text:     k.Text,
		Inf:      k.Inf,
		Priority: k.Priority,
	}
}

type readingXML struct {
	Text        string    `xml:"reb"`
	NoKanji     *struct{} `xml:"re_nokanji"`
	Restriction []string  `xml:"re_restr"`
	Inf         []string  `xml:"re_inf"`
	Priority    []string  `xml:"re_pri"`
}

func (r *readingXML) element() entry.ReadingElement {
	return entry.ReadingElement{
		Text:        r.Text,
		NoKanji:     r.NoKanji != nil,
		Restriction: r.Restriction,
		Inf:         r.Inf,
		Priority:    r.Priority,
	}
}

type langXML struct {
	Lang string `xml:"lang,attr"`
	Text string `xml:",chardata"`
}

type senseXML struct {
	KanjiRestriction   []string  `xml:"stagk"`
	ReadingRestriction []string  `xml:"stagr"`
	POS                []string  `xml:"pos"`
	Misc               []string  `xml:"misc"`
	Info               []string  `xml:"s_inf"`
	LSource            []langXML `xml:"lsource"`
	Dialect            []string  `xml:"dial"`
	Glosses            []langXML `xml:"gloss"`
}

func (s *senseXML) element() entry.SenseElement {
	el := entry.SenseElement{
		KanjiRestriction:   s.KanjiRestriction,
		ReadingRestriction: s.ReadingRestriction,
		POS:                s.POS,
		Misc:               s.Misc,
		Dialect:            s.Dialect,
	}
	for _, l := range s.LSource {
		lang := l.Lang
		if lang == "" {
			lang = defaultLang
		}
		el.LSource = append(el.LSource, lang)
	}
	for _, info := range s.Info {
		el.Info = append(el.Info, folding.FoldSpace(info))
	}
	for _, g := range s.Glosses {
		el.Glosses = append(el.Glosses, folding.FoldSpace(g.Text))
	}
	return el
}

type transXML struct {
	Types   []string `xml:"name_type"`
	Glosses []string `xml:"trans_det"`
}

func (t *transXML) element() entry.TransElement {
	el := entry.TransElement{Types: t.Types}
	for _, g := range t.Glosses {
		el.Glosses = append(el.Glosses, folding.FoldSpace(g))
	}
	return el
}
