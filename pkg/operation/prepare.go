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

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/document"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

type target struct {
	path string
	doc  *config.Document
}

// 🔍 expand resolves every document pattern in plan order. A file matched by
// two documents is an error since their patches would race on one buffer.
func expand(ctx context.Context, plan *config.Plan, store *document.Store) ([]target, error) {
	var targets []target
	owner := make(map[string]string)
	for i := range plan.Documents {
		doc := &plan.Documents[i]
		paths, err := store.Expand(ctx, doc.Path)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			key := store.Abs(path)
			if prev, ok := owner[key]; ok {
				return nil, errors.Errorf("document %s is matched by both %q and %q", path, prev, doc.Path)
			}
			owner[key] = doc.Path
			targets = append(targets, target{path: path, doc: doc})
		}
	}
	return targets, nil
}

// 🩹 prepare patches every document in memory. Documents run concurrently
// and the first failure cancels the rest. Results keep plan order.
func (op *BaseOperation) prepare(ctx context.Context, plan *config.Plan, store *document.Store) ([]*DocumentResult, error) {
	targets, err := expand(ctx, plan, store)
	if err != nil {
		return nil, errors.Errorf("expanding documents: %w", err)
	}

	results := make([]*DocumentResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	if op.opts.Concurrency > 0 {
		g.SetLimit(op.opts.Concurrency)
	}

	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			dctx := zerolog.Ctx(gctx).With().Str("document", t.path).Logger().WithContext(gctx)

			steps, err := t.doc.Steps(op.opts.Strict)
			if err != nil {
				return errors.Errorf("building steps for %s: %w", t.path, err)
			}

			content, err := store.Read(dctx, t.path)
			if err != nil {
				return err
			}

			res, err := patch.NewPipeline(steps...).Run(dctx, content)
			if err != nil {
				return errors.Errorf("patching %s: %w", t.path, err)
			}

			results[i] = &DocumentResult{Path: t.path, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Int("documents", len(results)).Msg("all documents patched in memory")
	return results, nil
}
