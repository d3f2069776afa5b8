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
	"errors"
	"fmt"
)

var (
	// ErrStructure indicates that the elements of an entry are out of order
	// or have the wrong arity.
	ErrStructure = errors.New("invalid entry structure")

	// ErrUnresolvedReference indicates that a restriction names a kanji
	// spelling or reading that has not been seen.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrUnknownEntity indicates that a tag is missing from the entity
	// table.
	ErrUnknownEntity = errors.New("unknown entity")
)

// Error is an error for a specific entry and field.
type Error struct {
	// ID is the entry id. It is zero if the id was not read yet.
	ID int

	// Field is the path of the offending field, e.g. "sense[1][0].gloss[2]".
	Field string

	Err error
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("entry %d: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("entry %d: %s: %v", e.ID, e.Field, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
