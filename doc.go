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

// Package rikaikun compiles the JMdict and JMnedict Japanese dictionaries
// into compact line-oriented dictionaries for a browser popup dictionary.
//
// A compiled dictionary contains three files:
//  1. An .ifo file that contains metadata about the dictionary: the format
//     version, the record and key counts, the size of the index, the id
//     subtracted from word ids, and the largest restricted reading index.
//  2. An .idx file that contains the dictionary index. It maps each lookup
//     key to the offsets of its records in the .dict file together with
//     part-of-speech flags, sorted by key.
//  3. A .dict file that contains one encoded record per line. The dict file
//     is compressed using the dictzip format so that it stays randomly
//     accessible.
//
// Entries are read from the XML sources by package jmdict, encoded by
// package record and assembled into a corpus by package compiler. Write
// stores a corpus and Open reads it back.
package rikaikun
