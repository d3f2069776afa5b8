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

// Package idx implements reading and writing .idx files.
//
// The .idx file maps lookup keys to the offsets of records in the .dict file.
// Entries are sorted by key bytes and then by offset.
//
// Each .idx file entry comes in three parts:
//  1. The key: a utf-8 string terminated by a null terminator ('\0').
//  2. The offset: a 32 bit integer offset of the record in the .dict file in
//     network byte order.
//  3. The flags: a 32 bit integer of part-of-speech flags in network byte
//     order. Zero means the offset carries no flags.
package idx
