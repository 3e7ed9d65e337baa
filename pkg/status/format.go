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
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/walteh/patchrc/pkg/patch"
)

// 🎨 Display configuration
const (
	stepIndent   = 4  // spaces to indent step entries
	nameWidth    = 30 // Base width for step name
	kindWidth    = 10 // Width for step kind
	outcomeWidth = 9  // Width for outcome text
)

// 🎯 FormatStep formats one step report for display
func FormatStep(r patch.StepReport) string {
	var prefix string
	switch r.Outcome {
	case patch.OutcomeApplied:
		prefix = color.GreenString("✓")
	case patch.OutcomeSkipped:
		prefix = color.HiBlackString("-")
	default:
		prefix = color.RedString("✗")
	}

	line := ""
	if r.Outcome == patch.OutcomeApplied {
		line = fmt.Sprintf("line %d", r.Line)
	}

	return strings.TrimRight(fmt.Sprintf("%s%s %-*s %-*s %-*s %s",
		strings.Repeat(" ", stepIndent),
		prefix,
		nameWidth, r.Name,
		kindWidth, string(r.Kind),
		outcomeWidth, string(r.Outcome),
		line,
	), " ")
}

// 🌈 ColorizeDiff colours a unified diff: additions green, removals red,
// hunk headers cyan
func ColorizeDiff(diff string) string {
	lines := strings.SplitAfter(diff, "\n")
	var b strings.Builder
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "+++"), strings.HasPrefix(l, "---"):
			b.WriteString(color.New(color.Bold).Sprint(l))
		case strings.HasPrefix(l, "+"):
			b.WriteString(color.GreenString("%s", l))
		case strings.HasPrefix(l, "-"):
			b.WriteString(color.RedString("%s", l))
		case strings.HasPrefix(l, "@@"):
			b.WriteString(color.CyanString("%s", l))
		default:
			b.WriteString(l)
		}
	}
	return b.String()
}
