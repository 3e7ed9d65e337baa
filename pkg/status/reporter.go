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
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/patch"
)

// 📢 Reporter tells the user what happened to each document. Everything
// printed is also sent to the context logger.
type Reporter struct {
	log zerolog.Logger
	out io.Writer
	mu  sync.Mutex
}

// 🎯 NewReporter creates a reporter writing to out
func NewReporter(ctx context.Context, out io.Writer) *Reporter {
	return &Reporter{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

// 📝 Document prints a header for path followed by one line per step
func (r *Reporter) Document(path string, res *patch.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "%s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(path))

	for _, rep := range res.Reports {
		fmt.Fprintln(r.out, FormatStep(rep))
	}

	r.log.Info().
		Str("document", path).
		Int("steps", len(res.Reports)).
		Int("applied", res.Applied()).
		Bool("changed", res.Changed()).
		Msg("document patched")
}

// 📋 Diff prints the unified diff of the document's change
func (r *Reporter) Diff(path string, res *patch.Result) error {
	diff, err := UnifiedDiff(path, res.Original, res.Content)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if diff == "" {
		fmt.Fprintf(r.out, "%s no changes to %s\n", color.HiBlackString("-"), path)
		return nil
	}
	fmt.Fprint(r.out, ColorizeDiff(diff))
	return nil
}

// 💾 Written reports a document write
func (r *Reporter) Written(path string, backedUp bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pterm.Info.WithPrefix(pterm.Prefix{Text: "💾"}).WithWriter(r.out).Printfln("Wrote %s", path)
	r.log.Info().Str("document", path).Bool("backup", backedUp).Msg("document written")
}

// ✅ Success reports a successful run
func (r *Reporter) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(r.out).Println(msg)
	r.log.Info().Msg(msg)
}

// ⚠️ Warning reports something the user should look at
func (r *Reporter) Warning(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).WithWriter(r.out).Println(msg)
	r.log.Warn().Msg(msg)
}

// ❌ Failure reports a failed run and its cause
func (r *Reporter) Failure(msg string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	printer := pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(r.out)
	printer.Println(msg)
	if err != nil {
		printer.Println(err)
	}
	r.log.Error().Err(err).Msg(msg)
}
