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
	"os"
	"path/filepath"

	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// 📚 Plan is the complete, ordered set of patches to apply
type Plan struct {
	Documents []Document `json:"documents" yaml:"documents" toml:"documents"`

	location string
}

// 📄 Document is one target path (or doublestar glob) and its patches, in order
type Document struct {
	Path    string  `json:"path" yaml:"path" toml:"path"`
	Patches []Patch `json:"patches" yaml:"patches" toml:"patches"`
}

// 🩹 Patch describes a single step. Kind selects which fields apply:
//   - replace: Old, New/NewFile, Occurrence, Optional
//   - function: Signature, New/NewFile, Open, Close, Comment
type Patch struct {
	Name       string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Kind       string `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`
	Old        string `json:"old,omitempty" yaml:"old,omitempty" toml:"old,omitempty"`
	New        string `json:"new,omitempty" yaml:"new,omitempty" toml:"new,omitempty"`
	NewFile    string `json:"new_file,omitempty" yaml:"new_file,omitempty" toml:"new_file,omitempty"`
	Signature  string `json:"signature,omitempty" yaml:"signature,omitempty" toml:"signature,omitempty"`
	Open       string `json:"open,omitempty" yaml:"open,omitempty" toml:"open,omitempty"`
	Close      string `json:"close,omitempty" yaml:"close,omitempty" toml:"close,omitempty"`
	Comment    string `json:"comment,omitempty" yaml:"comment,omitempty" toml:"comment,omitempty"`
	Occurrence string `json:"occurrence,omitempty" yaml:"occurrence,omitempty" toml:"occurrence,omitempty"`
	Optional   bool   `json:"optional,omitempty" yaml:"optional,omitempty" toml:"optional,omitempty"`
}

// Location returns the absolute path the plan was loaded from
func (p *Plan) Location() string {
	return p.location
}

// Dir returns the directory document paths and new_file entries are relative to
func (p *Plan) Dir() string {
	if p.location == "" {
		return "."
	}
	return filepath.Dir(p.location)
}

func (p *Plan) String() string {
	n := 0
	for _, d := range p.Documents {
		n += len(d.Patches)
	}
	return fmt.Sprintf("%s: %d documents, %d patches", p.location, len(p.Documents), n)
}

// resolveFiles loads every new_file into New
func (p *Plan) resolveFiles() error {
	for i := range p.Documents {
		for j := range p.Documents[i].Patches {
			pt := &p.Documents[i].Patches[j]
			if pt.NewFile == "" {
				continue
			}
			path := pt.NewFile
			if !filepath.IsAbs(path) {
				path = filepath.Join(p.Dir(), path)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Errorf("patch %q: reading new_file: %w", pt.Name, err)
			}
			pt.New = string(data)
		}
	}
	return nil
}

// 🔄 Steps converts the document's patches into pipeline steps. With strict
// set, every literal replacement requires a unique match.
func (d *Document) Steps(strict bool) ([]patch.Step, error) {
	steps := make([]patch.Step, 0, len(d.Patches))
	for _, pt := range d.Patches {
		step, err := pt.Step(strict)
		if err != nil {
			return nil, errors.Errorf("patch %q: %w", pt.Name, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Step converts a validated patch into a pipeline step
func (pt Patch) Step(strict bool) (patch.Step, error) {
	switch patch.StepKind(pt.Kind) {
	case patch.KindReplace:
		occ, err := patch.ParseOccurrence(pt.Occurrence)
		if err != nil {
			return nil, err
		}
		if strict {
			occ = patch.OccurrenceUnique
		}
		return &patch.ExactBlock{
			Label:      pt.Name,
			Old:        pt.Old,
			New:        pt.New,
			Occurrence: occ,
			Optional:   pt.Optional,
		}, nil
	case patch.KindFunction:
		return &patch.StructuralFunction{
			Label:     pt.Name,
			Signature: pt.Signature,
			New:       pt.New,
			Open:      firstRune(pt.Open),
			Close:     firstRune(pt.Close),
			Comment:   pt.Comment,
		}, nil
	default:
		return nil, errors.Errorf("unknown kind %q", pt.Kind)
	}
}

func firstRune(s string) rune {
	return runeOr(s, 0)
}

func runeOr(s string, def rune) rune {
	for _, r := range s {
		return r
	}
	return def
}
