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
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner executes operations
type OperationRunner struct {
	timeout time.Duration
}

// 🏗️ NewRunner creates a new runner. A positive timeout bounds each run.
func NewRunner(timeout time.Duration) *OperationRunner {
	return &OperationRunner{
		timeout: timeout,
	}
}

// 🏃 Run executes an operation
func (r *OperationRunner) Run(ctx context.Context, op Operation) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	ctx = zerolog.Ctx(ctx).With().Str("operation", op.Name()).Logger().WithContext(ctx)
	logger := zerolog.Ctx(ctx)

	start := time.Now()
	logger.Debug().Msg("operation started")

	err := op.Execute(ctx)
	logger.Debug().Dur("elapsed", time.Since(start)).Bool("ok", err == nil).Msg("operation finished")

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return errors.Errorf("operation cancelled: %w", err)
		}
		return err
	}
	return nil
}
