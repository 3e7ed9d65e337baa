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

package opts

import (
	"time"

	"github.com/walteh/patchrc/pkg/operation"
	"github.com/walteh/patchrc/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigPath  string
	Debug       bool
	Strict      bool
	Backup      bool
	Concurrency int
	Timeout     time.Duration
	Reporter    *status.Reporter
}

// 🔧 Operation converts the shared flags into operation options
func (o *RootOpts) Operation(dryRun bool) operation.Options {
	return operation.Options{
		ConfigPath:  o.ConfigPath,
		Strict:      o.Strict,
		Backup:      o.Backup,
		DryRun:      dryRun,
		Concurrency: o.Concurrency,
		Reporter:    o.Reporter,
	}
}
