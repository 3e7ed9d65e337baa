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
)

// 🔍 checkOperation runs the plan without writing and shows what would change
type checkOperation struct {
	BaseOperation
}

func (op *checkOperation) Name() string { return "check" }

func (op *checkOperation) Execute(ctx context.Context) error {
	reporter := op.reporter(ctx)

	plan, store, err := op.load(ctx)
	if err != nil {
		return err
	}

	results, err := op.prepare(ctx, plan, store)
	if err != nil {
		return err
	}

	pending := 0
	for _, dr := range results {
		reporter.Document(dr.Path, dr.Result)
		if err := reporter.Diff(dr.Path, dr.Result); err != nil {
			return err
		}
		if dr.Result.Changed() {
			pending++
		}
	}

	reporter.Success(fmt.Sprintf("all patches apply, %d of %d documents would change", pending, len(results)))
	return nil
}
