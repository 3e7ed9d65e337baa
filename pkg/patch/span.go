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

import "strings"

// 📏 Span is a half-open byte range [Start, End) within a buffer
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span
func (s Span) Len() int {
	return s.End - s.Start
}

// Text returns the part of buffer covered by the span
func (s Span) Text(buffer string) string {
	return buffer[s.Start:s.End]
}

// Splice returns buffer with the span replaced by text.
func (s Span) Splice(buffer, text string) string {
	var b strings.Builder
	b.Grow(len(buffer) - s.Len() + len(text))
	b.WriteString(buffer[:s.Start])
	b.WriteString(text)
	b.WriteString(buffer[s.End:])
	return b.String()
}

// Line returns the 1-based line number of the span start within buffer
func (s Span) Line(buffer string) int {
	return strings.Count(buffer[:s.Start], "\n") + 1
}
