// Copyright 2025 walteh LLC
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

package patch

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🎯 Occurrence selects which match of a literal block gets replaced
type Occurrence int

const (
	// OccurrenceFirst replaces the first match and ignores any later ones.
	OccurrenceFirst Occurrence = iota
	// OccurrenceUnique fails with AmbiguousMatchError when there is more than one match.
	OccurrenceUnique
)

func (o Occurrence) String() string {
	switch o {
	case OccurrenceFirst:
		return "first"
	case OccurrenceUnique:
		return "unique"
	default:
		return "unknown"
	}
}

// ParseOccurrence parses "first" or "unique". An empty string means first.
func ParseOccurrence(s string) (Occurrence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return OccurrenceFirst, nil
	case "unique":
		return OccurrenceUnique, nil
	default:
		return OccurrenceFirst, errors.Errorf("unknown occurrence %q (want first or unique)", s)
	}
}

// 🔄 ReplaceBlock replaces one occurrence of old in buffer with new.
//
// When old is absent it returns a *PatchNotFoundError and the buffer as given.
// Nothing is replaced unless the whole of old is found, so applying the same
// block twice fails the second time.
func ReplaceBlock(buffer, old, new string, occ Occurrence) (string, Span, error) {
	if old == "" {
		return buffer, Span{}, ErrEmptyMatch
	}

	idx := strings.Index(buffer, old)
	if idx < 0 {
		return buffer, Span{}, &PatchNotFoundError{Block: old}
	}

	if occ == OccurrenceUnique {
		if n := countMatches(buffer, old); n > 1 {
			return buffer, Span{}, &AmbiguousMatchError{Target: old, Count: n}
		}
	}

	span := Span{Start: idx, End: idx + len(old)}
	return span.Splice(buffer, new), span, nil
}

// countMatches counts every position where sub starts, overlapping ones included
func countMatches(s, sub string) int {
	n := 0
	for i := 0; i <= len(s)-len(sub); {
		j := strings.Index(s[i:], sub)
		if j < 0 {
			break
		}
		n++
		i += j + 1
	}
	return n
}
