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

package status

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

func disableColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = prev
		pterm.EnableStyling()
	})
}

// 🧪 TestFormatStep checks the layout of a single step line
func TestFormatStep(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name   string
		report patch.StepReport
		want   string
	}{
		{
			name: "applied_shows_line",
			report: patch.StepReport{
				Name:    "fix-tokens",
				Kind:    patch.KindReplace,
				Outcome: patch.OutcomeApplied,
				Line:    12,
			},
			want: "    ✓ fix-tokens" + strings.Repeat(" ", 20) + " replace    applied   line 12",
		},
		{
			name: "skipped_has_no_line",
			report: patch.StepReport{
				Name:    "optional-banner",
				Kind:    patch.KindReplace,
				Outcome: patch.OutcomeSkipped,
				Line:    3,
			},
			want: "    - optional-banner" + strings.Repeat(" ", 15) + " replace    skipped",
		},
		{
			name: "function_kind",
			report: patch.StepReport{
				Name:    "enrich",
				Kind:    patch.KindFunction,
				Outcome: patch.OutcomeApplied,
				Line:    1,
			},
			want: "    ✓ enrich" + strings.Repeat(" ", 24) + " function   applied   line 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatStep(tt.report))
		})
	}
}

func TestUnifiedDiff(t *testing.T) {
	t.Run("equal_content", func(t *testing.T) {
		diff, err := UnifiedDiff("a.txt", "same\n", "same\n")
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("changed_line", func(t *testing.T) {
		diff, err := UnifiedDiff("web/index.html", "one\ntwo\nthree\n", "one\n2\nthree\n")
		require.NoError(t, err)
		assert.Contains(t, diff, "--- a/web/index.html")
		assert.Contains(t, diff, "+++ b/web/index.html")
		assert.Contains(t, diff, "-two\n")
		assert.Contains(t, diff, "+2\n")
		assert.Contains(t, diff, " one\n")
	})
}

func TestColorizeDiff_KeepsText(t *testing.T) {
	disableColor(t)

	diff := "--- a/x\n+++ b/x\n@@ -1 +1 @@\n-old\n+new\n"
	assert.Equal(t, diff, ColorizeDiff(diff))
}

func TestReporter(t *testing.T) {
	disableColor(t)

	var logs bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())

	var out bytes.Buffer
	reporter := NewReporter(ctx, &out)

	res := &patch.Result{
		Original: "a\n",
		Content:  "b\n",
		Reports: []patch.StepReport{
			{Name: "swap", Kind: patch.KindReplace, Outcome: patch.OutcomeApplied, Line: 1},
		},
	}

	reporter.Document("doc.txt", res)
	require.NoError(t, reporter.Diff("doc.txt", res))
	reporter.Written("doc.txt", true)
	reporter.Success("patched 1 document")
	reporter.Failure("patch failed", errors.New("boom"))

	printed := out.String()
	assert.Contains(t, printed, "doc.txt")
	assert.Contains(t, printed, "✓ swap")
	assert.Contains(t, printed, "-a\n")
	assert.Contains(t, printed, "+b\n")
	assert.Contains(t, printed, "Wrote doc.txt")
	assert.Contains(t, printed, "patched 1 document")
	assert.Contains(t, printed, "boom")

	logged := logs.String()
	assert.Contains(t, logged, `"message":"document patched"`)
	assert.Contains(t, logged, `"applied":1`)
	assert.Contains(t, logged, `"backup":true`)
	assert.Contains(t, logged, `"level":"error"`)
}

func TestReporter_DiffWithoutChanges(t *testing.T) {
	disableColor(t)

	var out bytes.Buffer
	reporter := NewReporter(context.Background(), &out)
	require.NoError(t, reporter.Diff("same.txt", &patch.Result{Original: "x", Content: "x"}))
	assert.Contains(t, out.String(), "no changes to same.txt")
}
