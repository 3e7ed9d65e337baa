/*
Package config loads the patch plan for patchrc.

	            +-------------+
	            |    Plan     |
	            | (documents) |
	            +------+------+
	                   |
	   +--------+------+------+--------+
	   |        |             |        |
	+--+---+ +--+---+     +---+--+ +---+--+
	| HCL  | | YAML |     | JSON | | TOML |
	+------+ +------+     +------+ +------+

🎯 Purpose:
- Reads the ordered list of documents and patches from a static file
- Picks a parser by file extension through the Parser registry
- Validates patches and fills in defaults (names, inferred kinds)
- Loads new_file replacement text relative to the plan

🔄 Flow:
1. Load reads the file and selects a parser
2. The parser decodes into Plan, rejecting unknown fields
3. Validate checks every patch for its kind
4. new_file contents are read into New
5. Document.Steps turns patches into patch.Step values

🔍 Example (.patchrc.hcl):

	document "index.html" {
	  patch "import" {
	    old = <<EOT
	    import { advise } from './explorer.js';
	EOT
	    new = <<EOT
	    import { advisePgn } from './explorer.js';
	EOT
	  }

	  patch "enrich" {
	    kind      = "function"
	    signature = "async function enrich(openings, elo) {"
	    new_file  = "patches/enrich.js"
	  }

	  patch "rename" {
	    old      = "adviseFromLichess("
	    new      = "adviseFromLichessPgn("
	    optional = true
	  }
	}

HCL interpolates "${" and "%{" sequences; write "$${" and "%%{" for literal code.
*/
package config
