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
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

type hclPlan struct {
	Documents []hclDocument `hcl:"document,block"`
}

type hclDocument struct {
	Path    string     `hcl:"path,label"`
	Patches []hclPatch `hcl:"patch,block"`
}

type hclPatch struct {
	Name       string `hcl:"name,label"`
	Kind       string `hcl:"kind,optional"`
	Old        string `hcl:"old,optional"`
	New        string `hcl:"new,optional"`
	NewFile    string `hcl:"new_file,optional"`
	Signature  string `hcl:"signature,optional"`
	Open       string `hcl:"open,optional"`
	Close      string `hcl:"close,optional"`
	Comment    string `hcl:"comment,optional"`
	Occurrence string `hcl:"occurrence,optional"`
	Optional   bool   `hcl:"optional,optional"`
}

// 📝 Parse parses the plan from HCL. Expressions can read env.NAME and
// plan_dir. Literal "${" in code must be written as "$${".
func (p *HCLParser) Parse(ctx context.Context, data []byte, filename string) (*Plan, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filepath.Base(filename))
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	var raw hclPlan
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(filename), &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	plan := &Plan{}
	for _, d := range raw.Documents {
		doc := Document{Path: d.Path}
		for _, pt := range d.Patches {
			doc.Patches = append(doc.Patches, Patch(pt))
		}
		plan.Documents = append(plan.Documents, doc)
	}

	return plan, nil
}

// evalContext exposes the environment and the plan directory to expressions
func evalContext(filename string) *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = cty.StringVal(v)
	}

	dir, err := filepath.Abs(filepath.Dir(filename))
	if err != nil {
		dir = filepath.Dir(filename)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env":      cty.ObjectVal(env),
			"plan_dir": cty.StringVal(dir),
		},
	}
}
