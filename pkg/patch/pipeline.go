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

// 🚰 Pipeline applies an ordered list of steps to one buffer
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a pipeline that runs steps in the given order
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Steps returns the steps in run order
func (p *Pipeline) Steps() []Step {
	return p.steps
}

// 📦 Result holds the rewritten buffer and what each step did
type Result struct {
	Original string
	Content  string
	Reports  []StepReport
}

// Changed reports whether the pipeline altered the buffer
func (r *Result) Changed() bool {
	return r.Original != r.Content
}

// Applied counts the steps that replaced something
func (r *Result) Applied() int {
	n := 0
	for _, rep := range r.Reports {
		if rep.Outcome == OutcomeApplied {
			n++
		}
	}
	return n
}

// 🏃 Run threads buffer through every step. The first failing step stops the
// run and no result is returned, so callers never see a partly patched buffer.
func (p *Pipeline) Run(ctx context.Context, buffer string) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	result := &Result{
		Original: buffer,
		Reports:  make([]StepReport, 0, len(p.steps)),
	}

	current := buffer
	for i, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("pipeline cancelled before step %d: %w", i+1, err)
		}

		next, report, err := step.Apply(ctx, current)
		if err != nil {
			return nil, errors.Errorf("step %d (%s %q): %w", i+1, step.Kind(), step.Name(), err)
		}

		logger.Debug().
			Str("step", step.Name()).
			Str("kind", string(step.Kind())).
			Str("outcome", string(report.Outcome)).
			Int("line", report.Line).
			Int("removed", report.Span.Len()).
			Int("delta", len(next)-len(current)).
			Msg("patch step")

		result.Reports = append(result.Reports, report)
		current = next
	}

	result.Content = current
	return result, nil
}
