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

package config

import (
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Validate checks the plan and fills in defaults: a missing name becomes
// patch-N, and a missing kind is inferred from whether old or signature is set.
func (p *Plan) Validate() error {
	if len(p.Documents) == 0 {
		return errors.Errorf("at least one document is required")
	}

	seen := make(map[string]int, len(p.Documents))
	for i := range p.Documents {
		d := &p.Documents[i]
		if d.Path == "" {
			return errors.Errorf("documents[%d]: path is required", i)
		}
		d.Path = filepath.ToSlash(filepath.Clean(d.Path))
		if prev, ok := seen[d.Path]; ok {
			return errors.Errorf("documents[%d]: path %q already used by documents[%d]", i, d.Path, prev)
		}
		seen[d.Path] = i

		if len(d.Patches) == 0 {
			return errors.Errorf("documents[%d] (%s): at least one patch is required", i, d.Path)
		}

		names := make(map[string]bool, len(d.Patches))
		for j := range d.Patches {
			pt := &d.Patches[j]
			if pt.Name == "" {
				pt.Name = fmt.Sprintf("patch-%d", j+1)
			}
			if names[pt.Name] {
				return errors.Errorf("documents[%d] (%s): duplicate patch name %q", i, d.Path, pt.Name)
			}
			names[pt.Name] = true

			if err := pt.validate(); err != nil {
				return errors.Errorf("documents[%d] (%s) patch %q: %w", i, d.Path, pt.Name, err)
			}
		}
	}

	return nil
}

func (pt *Patch) validate() error {
	if pt.Kind == "" {
		switch {
		case pt.Old != "" && pt.Signature == "":
			pt.Kind = string(patch.KindReplace)
		case pt.Signature != "" && pt.Old == "":
			pt.Kind = string(patch.KindFunction)
		default:
			return errors.Errorf("kind is required when neither or both of old and signature are set")
		}
	}

	if pt.New != "" && pt.NewFile != "" {
		return errors.Errorf("new and new_file are mutually exclusive")
	}

	switch patch.StepKind(pt.Kind) {
	case patch.KindReplace:
		if pt.Old == "" {
			return errors.Errorf("old is required")
		}
		if pt.Signature != "" || pt.Open != "" || pt.Close != "" || pt.Comment != "" {
			return errors.Errorf("signature, open, close and comment only apply to function patches")
		}
		if _, err := patch.ParseOccurrence(pt.Occurrence); err != nil {
			return err
		}
	case patch.KindFunction:
		if pt.Signature == "" {
			return errors.Errorf("signature is required")
		}
		if pt.Old != "" {
			return errors.Errorf("old only applies to replace patches")
		}
		if pt.Optional {
			return errors.Errorf("function patches cannot be optional")
		}
		if pt.Occurrence != "" {
			return errors.Errorf("occurrence only applies to replace patches")
		}
		if pt.Open != "" && utf8.RuneCountInString(pt.Open) != 1 {
			return errors.Errorf("open must be a single character, got %q", pt.Open)
		}
		if pt.Close != "" && utf8.RuneCountInString(pt.Close) != 1 {
			return errors.Errorf("close must be a single character, got %q", pt.Close)
		}
		if runeOr(pt.Open, patch.DefaultOpen) == runeOr(pt.Close, patch.DefaultClose) {
			return errors.Errorf("open and close must differ")
		}
	default:
		return errors.Errorf("unknown kind %q (want replace or function)", pt.Kind)
	}

	return nil
}
