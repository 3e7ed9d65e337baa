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
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

const pipelineDoc = `<script type="module">
  import { advise } from './explorer.js';
</script>
<script>
  // Enrich openings
  async function enrich(openings) {
    for (const o of openings) {
      o.lichess = await advise(o);
    }
  }

  function render() {
    trapEngine.matchPgn(game.pgn, opts);
  }
</script>
`

func TestPipeline_Run(t *testing.T) {
	tests := []struct {
		name         string
		steps        []Step
		want         string
		wantOutcomes []Outcome
		wantError    string
		check        func(t *testing.T, err error)
	}{
		{
			name: "all_steps_apply_in_order",
			steps: []Step{
				&ExactBlock{
					Label: "import",
					Old:   "import { advise } from './explorer.js';",
					New:   "import { advisePgn } from './explorer.js';",
				},
				&StructuralFunction{
					Label:     "enrich",
					Signature: "async function enrich(openings) {",
					New:       "  async function enrich(openings) {\n    return advisePgn(openings);\n  }\n\n",
				},
				&ExactBlock{
					Label:    "pgn",
					Old:      "trapEngine.matchPgn(game.pgn",
					New:      "trapEngine.matchPgn(pgn",
					Optional: true,
				},
			},
			want: `<script type="module">
  import { advisePgn } from './explorer.js';
</script>
<script>
  async function enrich(openings) {
    return advisePgn(openings);
  }

  function render() {
    trapEngine.matchPgn(pgn, opts);
  }
</script>
`,
			wantOutcomes: []Outcome{OutcomeApplied, OutcomeApplied, OutcomeApplied},
		},
		{
			name: "later_step_sees_earlier_output",
			steps: []Step{
				&ExactBlock{Label: "rename", Old: "advise(o)", New: "adviseOne(o)"},
				&ExactBlock{Label: "rename-again", Old: "adviseOne(o)", New: "adviseTwo(o)", Occurrence: OccurrenceUnique},
			},
			want:         replaceOnce(pipelineDoc, "advise(o)", "adviseTwo(o)"),
			wantOutcomes: []Outcome{OutcomeApplied, OutcomeApplied},
		},
		{
			name: "optional_absent_is_skipped",
			steps: []Step{
				&ExactBlock{Label: "gone", Old: "adviseFromLichess(", New: "x(", Optional: true},
			},
			want:         pipelineDoc,
			wantOutcomes: []Outcome{OutcomeSkipped},
		},
		{
			name: "mandatory_absent_fails",
			steps: []Step{
				&ExactBlock{Label: "import", Old: "import { advise } from './explorer.js';", New: "import { a } from './a.js';"},
				&ExactBlock{Label: "tokens", Old: "const tokens = normalize(pgn);", New: "const tokens = [];"},
			},
			wantError: `step 2 (replace "tokens")`,
			check: func(t *testing.T, err error) {
				var target *PatchNotFoundError
				require.True(t, errors.As(err, &target))
			},
		},
		{
			name: "optional_does_not_hide_ambiguity",
			steps: []Step{
				&ExactBlock{Label: "script", Old: "<script", New: "<SCRIPT", Optional: true, Occurrence: OccurrenceUnique},
			},
			wantError: `step 1 (replace "script")`,
			check: func(t *testing.T, err error) {
				var target *AmbiguousMatchError
				require.True(t, errors.As(err, &target))
				assert.Equal(t, 2, target.Count)
			},
		},
		{
			name: "missing_function_fails",
			steps: []Step{
				&StructuralFunction{Label: "missing", Signature: "function missing() {", New: ""},
			},
			wantError: `step 1 (function "missing")`,
			check: func(t *testing.T, err error) {
				var target *FunctionNotFoundError
				require.True(t, errors.As(err, &target))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			ctx := zerolog.New(&logs).Level(zerolog.DebugLevel).WithContext(context.Background())

			result, err := NewPipeline(tt.steps...).Run(ctx, pipelineDoc)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				assert.Nil(t, result, "failed run should not return a result")
				if tt.check != nil {
					tt.check(t, err)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, pipelineDoc, result.Original)
			assert.Equal(t, tt.want, result.Content)
			assert.Equal(t, tt.want != pipelineDoc, result.Changed())

			outcomes := make([]Outcome, 0, len(result.Reports))
			for _, r := range result.Reports {
				outcomes = append(outcomes, r.Outcome)
			}
			assert.Equal(t, tt.wantOutcomes, outcomes)
			assert.Contains(t, logs.String(), `"message":"patch step"`)
		})
	}
}

func TestPipeline_Reports(t *testing.T) {
	p := NewPipeline(
		&StructuralFunction{Label: "enrich", Signature: "async function enrich(openings) {", New: ""},
		&ExactBlock{Label: "absent", Old: "nope", Optional: true},
	)
	require.Len(t, p.Steps(), 2)

	result, err := p.Run(context.Background(), pipelineDoc)
	require.NoError(t, err)
	require.Len(t, result.Reports, 2)

	enrich := result.Reports[0]
	assert.Equal(t, "enrich", enrich.Name)
	assert.Equal(t, KindFunction, enrich.Kind)
	assert.Equal(t, 5, enrich.Line, "span should start at the comment line")

	absent := result.Reports[1]
	assert.Equal(t, KindReplace, absent.Kind)
	assert.Equal(t, OutcomeSkipped, absent.Outcome)
	assert.Equal(t, 1, result.Applied())
}

func TestPipeline_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewPipeline(&ExactBlock{Label: "a", Old: "a", New: "b"}).Run(ctx, "a")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, context.Canceled))
}

// 🔧 mockStep is a mock implementation of Step
type mockStep struct {
	mock.Mock
}

func (m *mockStep) Name() string {
	return m.Called().String(0)
}

func (m *mockStep) Kind() StepKind {
	return m.Called().Get(0).(StepKind)
}

func (m *mockStep) Apply(ctx context.Context, buffer string) (string, StepReport, error) {
	args := m.Called(ctx, buffer)
	return args.String(0), args.Get(1).(StepReport), args.Error(2)
}

func TestPipeline_StopsAtFirstFailure(t *testing.T) {
	first := &mockStep{}
	first.On("Name").Return("first")
	first.On("Kind").Return(KindReplace)
	first.On("Apply", mock.Anything, "v1").
		Return("v2", StepReport{Name: "first", Kind: KindReplace, Outcome: OutcomeApplied}, nil).Once()

	failing := &mockStep{}
	failing.On("Name").Return("failing")
	failing.On("Kind").Return(KindFunction)
	failing.On("Apply", mock.Anything, "v2").
		Return("v2", StepReport{}, &FunctionNotFoundError{Signature: "function gone() {"}).Once()

	never := &mockStep{}

	result, err := NewPipeline(first, failing, never).Run(context.Background(), "v1")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), `step 2 (function "failing")`)

	var notFound *FunctionNotFoundError
	require.True(t, errors.As(err, &notFound))

	first.AssertExpectations(t)
	failing.AssertExpectations(t)
	never.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
}

func replaceOnce(s, old, new string) string {
	out, _, err := ReplaceBlock(s, old, new, OccurrenceFirst)
	if err != nil {
		panic(err)
	}
	return out
}
