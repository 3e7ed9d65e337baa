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
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ StepKind names the matcher a step uses
type StepKind string

const (
	KindReplace  StepKind = "replace"
	KindFunction StepKind = "function"
)

// 📊 Outcome is what a step did to the buffer
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeSkipped Outcome = "skipped"
)

// 📝 StepReport describes one applied or skipped step. Span and Line refer to
// the buffer the step received.
type StepReport struct {
	Name    string
	Kind    StepKind
	Outcome Outcome
	Span    Span
	Line    int
}

// 🔌 Step is one pure transformation of a buffer
type Step interface {
	Name() string
	Kind() StepKind
	Apply(ctx context.Context, buffer string) (string, StepReport, error)
}

// 📦 ExactBlock replaces a literal block.
type ExactBlock struct {
	Label      string
	Old        string
	New        string
	Occurrence Occurrence
	// Optional steps are skipped instead of failing when Old is absent.
	Optional bool
}

var _ Step = (*ExactBlock)(nil)

func (s *ExactBlock) Name() string   { return s.Label }
func (s *ExactBlock) Kind() StepKind { return KindReplace }

func (s *ExactBlock) Apply(ctx context.Context, buffer string) (string, StepReport, error) {
	report := StepReport{Name: s.Label, Kind: KindReplace}

	out, span, err := ReplaceBlock(buffer, s.Old, s.New, s.Occurrence)
	if err != nil {
		var notFound *PatchNotFoundError
		if s.Optional && errors.As(err, &notFound) {
			zerolog.Ctx(ctx).Debug().Str("step", s.Label).Msg("optional block absent, skipping")
			report.Outcome = OutcomeSkipped
			return buffer, report, nil
		}
		return buffer, report, err
	}

	report.Outcome = OutcomeApplied
	report.Span = span
	report.Line = span.Line(buffer)
	return out, report, nil
}

// 🧩 StructuralFunction replaces a whole function found by its signature.
// Zero delimiters and an empty comment marker fall back to the defaults.
type StructuralFunction struct {
	Label     string
	Signature string
	New       string
	Open      rune
	Close     rune
	Comment   string
}

var _ Step = (*StructuralFunction)(nil)

func (s *StructuralFunction) Name() string   { return s.Label }
func (s *StructuralFunction) Kind() StepKind { return KindFunction }

func (s *StructuralFunction) Apply(ctx context.Context, buffer string) (string, StepReport, error) {
	report := StepReport{Name: s.Label, Kind: KindFunction}

	out, span, err := ReplaceFunction(buffer, s.Signature, s.New,
		WithDelimiters(s.Open, s.Close),
		WithCommentMarker(s.Comment),
	)
	if err != nil {
		return buffer, report, err
	}

	report.Outcome = OutcomeApplied
	report.Span = span
	report.Line = span.Line(buffer)
	return out, report, nil
}
