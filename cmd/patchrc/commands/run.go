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

package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/operation"
)

func run(ctx context.Context, name string, o *opts.RootOpts, dryRun bool) error {
	ctx = zerolog.Ctx(ctx).With().Str("command", name).Logger().WithContext(ctx)

	op, err := operation.New(o.Operation(dryRun))
	if err != nil {
		return err
	}
	return operation.NewRunner(o.Timeout).Run(ctx, op)
}
