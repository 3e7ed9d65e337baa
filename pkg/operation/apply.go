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

package operation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/document"
	"gitlab.com/tozd/go/errors"
)

// 📝 applyOperation patches every document and writes the changed ones
type applyOperation struct {
	BaseOperation
}

func (op *applyOperation) Name() string { return "apply" }

// 🏃 Execute runs the plan. Nothing is written unless every document patched
// cleanly.
func (op *applyOperation) Execute(ctx context.Context) error {
	reporter := op.reporter(ctx)

	plan, store, err := op.load(ctx)
	if err != nil {
		return err
	}

	results, err := op.prepare(ctx, plan, store)
	if err != nil {
		return err
	}

	for _, dr := range results {
		reporter.Document(dr.Path, dr.Result)
	}

	written, err := op.write(ctx, store, results)
	if err != nil {
		return err
	}

	if written == 0 {
		reporter.Success(fmt.Sprintf("%d documents already up to date", len(results)))
		return nil
	}
	reporter.Success(fmt.Sprintf("patched %d of %d documents", written, len(results)))
	return nil
}

// write stores every changed document. When a write fails and backups are
// on, documents written earlier in this run are restored.
func (op *applyOperation) write(ctx context.Context, store *document.Store, results []*DocumentResult) (int, error) {
	logger := zerolog.Ctx(ctx)
	reporter := op.reporter(ctx)

	var written []string
	for _, dr := range results {
		if !dr.Result.Changed() {
			logger.Debug().Str("document", dr.Path).Msg("unchanged, not writing")
			continue
		}

		if err := store.WriteAtomic(ctx, dr.Path, dr.Result.Content); err != nil {
			if op.opts.Backup {
				op.rollback(ctx, store, written)
			}
			return len(written), errors.Errorf("writing %s: %w", dr.Path, err)
		}

		written = append(written, dr.Path)
		reporter.Written(dr.Path, op.opts.Backup)
	}

	return len(written), nil
}

func (op *applyOperation) rollback(ctx context.Context, store *document.Store, written []string) {
	logger := zerolog.Ctx(ctx)
	reporter := op.reporter(ctx)
	for i := len(written) - 1; i >= 0; i-- {
		if err := store.Restore(ctx, written[i]); err != nil {
			logger.Error().Err(err).Str("document", written[i]).Msg("restoring document after failed write")
			continue
		}
		reporter.Warning(fmt.Sprintf("restored %s from backup after a failed write", written[i]))
	}
}
