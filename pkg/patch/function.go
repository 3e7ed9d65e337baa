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
)

const (
	DefaultOpen          = '{'
	DefaultClose         = '}'
	DefaultCommentMarker = "//"
)

type functionOptions struct {
	open    rune
	close   rune
	comment string
}

// 🔧 FunctionOption customizes how LocateFunction finds a function's extent
type FunctionOption func(*functionOptions)

// WithDelimiters sets the opening and closing delimiters counted for depth.
// A zero rune keeps the default for that side.
func WithDelimiters(open, close rune) FunctionOption {
	return func(o *functionOptions) {
		if open != 0 {
			o.open = open
		}
		if close != 0 {
			o.close = close
		}
	}
}

// WithCommentMarker sets the prefix that marks a single-line comment.
// An empty marker keeps the default.
func WithCommentMarker(marker string) FunctionOption {
	return func(o *functionOptions) {
		if marker != "" {
			o.comment = marker
		}
	}
}

func newFunctionOptions(opts []FunctionOption) functionOptions {
	o := functionOptions{
		open:    DefaultOpen,
		close:   DefaultClose,
		comment: DefaultCommentMarker,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// 🔍 LocateFunction finds the span of the function introduced by signature.
//
// The span starts at the beginning of the signature's line, or at the
// beginning of the line above when that line is a single-line comment. Only
// one comment line is absorbed. The span ends after the delimiter that
// balances the first opening delimiter at or after the signature, plus any
// line terminators that directly follow it.
//
// Delimiters are counted wherever they appear, including inside string
// literals and comments. A body holding an unbalanced delimiter in a string
// yields an UnbalancedDelimiterError or a span that ends too early.
func LocateFunction(buffer, signature string, opts ...FunctionOption) (Span, error) {
	if signature == "" {
		return Span{}, ErrEmptyMatch
	}
	o := newFunctionOptions(opts)

	sig := strings.Index(buffer, signature)
	if sig < 0 {
		return Span{}, &FunctionNotFoundError{Signature: signature}
	}
	if n := countMatches(buffer, signature); n > 1 {
		return Span{}, &AmbiguousMatchError{Target: signature, Count: n}
	}

	closeAt, err := matchingClose(buffer, sig, signature, o)
	if err != nil {
		return Span{}, err
	}

	return Span{
		Start: commentedLineStart(buffer, sig, o.comment),
		End:   skipLineTerminators(buffer, closeAt+len(string(o.close))),
	}, nil
}

// 🔄 ReplaceFunction replaces the span found by LocateFunction with newText.
// newText is inserted verbatim, so it should carry its own comment line and
// trailing newline when those are wanted.
func ReplaceFunction(buffer, signature, newText string, opts ...FunctionOption) (string, Span, error) {
	span, err := LocateFunction(buffer, signature, opts...)
	if err != nil {
		return buffer, Span{}, err
	}
	return span.Splice(buffer, newText), span, nil
}

// matchingClose returns the offset of the closing delimiter that brings the
// depth back to zero, counting from the first opening delimiter after from.
func matchingClose(buffer string, from int, signature string, o functionOptions) (int, error) {
	rel := strings.IndexRune(buffer[from:], o.open)
	if rel < 0 {
		return 0, &UnbalancedDelimiterError{
			Signature: signature,
			Open:      o.open,
			Close:     o.close,
			Offset:    -1,
		}
	}
	openAt := from + rel

	depth := 0
	for i, r := range buffer[openAt:] {
		switch r {
		case o.open:
			depth++
		case o.close:
			depth--
			if depth == 0 {
				return openAt + i, nil
			}
		}
	}

	return 0, &UnbalancedDelimiterError{
		Signature: signature,
		Open:      o.open,
		Close:     o.close,
		Offset:    openAt,
		Depth:     depth,
	}
}

// lineStart returns the offset of the first byte of the line holding i
func lineStart(buffer string, i int) int {
	return strings.LastIndexByte(buffer[:i], '\n') + 1
}

// commentedLineStart returns the start of the line holding sig, moved up one
// line when the line directly above is a comment.
func commentedLineStart(buffer string, sig int, marker string) int {
	own := lineStart(buffer, sig)
	if own == 0 {
		return own
	}

	prev := lineStart(buffer, own-1)
	if strings.HasPrefix(strings.TrimSpace(buffer[prev:own]), marker) {
		return prev
	}
	return own
}

func skipLineTerminators(buffer string, end int) int {
	for end < len(buffer) && (buffer[end] == '\r' || buffer[end] == '\n') {
		end++
	}
	return end
}
