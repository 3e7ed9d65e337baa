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
	"io"

	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/document"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one run of a plan against its documents
type Operation interface {
	// Name identifies the operation in logs
	Name() string
	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for an operation
type Options struct {
	// ConfigPath is the plan file to load
	ConfigPath string
	// Strict requires every literal replacement to match exactly once
	Strict bool
	// Backup keeps a .bak copy of every document before it is written
	Backup bool
	// DryRun prints a diff instead of writing
	DryRun bool
	// Concurrency caps how many documents are patched at once. Zero means no limit.
	Concurrency int
	// Reporter receives user facing output. Nil discards it.
	Reporter *status.Reporter
}

// 📄 DocumentResult is the patched content of one expanded document path
type DocumentResult struct {
	Path   string
	Result *patch.Result
}

// 🏭 New creates the operation selected by opts: a dry run when DryRun is
// set and a writing run otherwise
func New(opts Options) (Operation, error) {
	if opts.ConfigPath == "" {
		return nil, errors.Errorf("config path is required")
	}
	if opts.Concurrency < 0 {
		return nil, errors.Errorf("concurrency must not be negative, got %d", opts.Concurrency)
	}

	base := BaseOperation{opts: opts}
	if opts.DryRun {
		return &checkOperation{BaseOperation: base}, nil
	}
	return &applyOperation{BaseOperation: base}, nil
}

// 🏃 Apply loads the plan at opts.ConfigPath and runs it
func Apply(ctx context.Context, opts Options) error {
	op, err := New(opts)
	if err != nil {
		return err
	}
	return NewRunner(0).Run(ctx, op)
}

// BaseOperation holds what every operation shares: loading the plan and
// patching each document in memory
type BaseOperation struct {
	opts Options
}

func (op *BaseOperation) reporter(ctx context.Context) *status.Reporter {
	if op.opts.Reporter == nil {
		op.opts.Reporter = status.NewReporter(ctx, io.Discard)
	}
	return op.opts.Reporter
}

// load reads the plan and opens a store rooted at the plan's directory
func (op *BaseOperation) load(ctx context.Context) (*config.Plan, *document.Store, error) {
	plan, err := config.Load(ctx, op.opts.ConfigPath)
	if err != nil {
		return nil, nil, errors.Errorf("loading plan: %w", err)
	}
	return plan, document.NewStore(plan.Dir(), op.opts.Backup), nil
}
