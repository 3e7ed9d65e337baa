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
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrEmptyMatch is returned when a literal or signature to search for is empty.
var ErrEmptyMatch = errors.New("match text is empty")

// previewWidth bounds how much of a block is echoed back in error messages
const previewWidth = 60

// ❌ PatchNotFoundError reports a literal block that is absent from the buffer
type PatchNotFoundError struct {
	Block string
}

func (e *PatchNotFoundError) Error() string {
	return fmt.Sprintf("patch block not found: %s", preview(e.Block))
}

// ❌ FunctionNotFoundError reports a function signature that is absent from the buffer
type FunctionNotFoundError struct {
	Signature string
}

func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("function not found: %s", preview(e.Signature))
}

// ❌ UnbalancedDelimiterError reports a forward scan that ran out of buffer
// before the delimiter depth returned to zero. Offset is the position of the
// opening delimiter, or -1 when no opening delimiter follows the signature.
type UnbalancedDelimiterError struct {
	Signature string
	Open      rune
	Close     rune
	Offset    int
	Depth     int
}

func (e *UnbalancedDelimiterError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("no %q after function %s", e.Open, preview(e.Signature))
	}
	return fmt.Sprintf("unbalanced %q%q in function %s: %d unclosed from offset %d",
		e.Open, e.Close, preview(e.Signature), e.Depth, e.Offset)
}

// ❌ AmbiguousMatchError reports a target that must be unique but appears more than once
type AmbiguousMatchError struct {
	Target string
	Count  int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("%s matches %d times, expected exactly once", preview(e.Target), e.Count)
}

// preview quotes the first line of s, truncated for display
func preview(s string) string {
	line, rest, multi := strings.Cut(s, "\n")
	truncated := multi && strings.TrimSpace(rest) != ""
	if r := []rune(line); len(r) > previewWidth {
		line = string(r[:previewWidth])
		truncated = true
	}
	if truncated {
		return fmt.Sprintf("%q…", line)
	}
	return fmt.Sprintf("%q", line)
}
