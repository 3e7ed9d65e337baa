/*
Package patch implements the text surgery behind patchrc.

	+-------------+     +-------------+     +-------------+
	|   buffer    | --> |    Step     | --> |   buffer'   |
	|  (string)   |     | (pure func) |     |  (string)   |
	+-------------+     +-------------+     +-------------+

🎯 Two matchers:
  - ExactBlock / ReplaceBlock: a literal block that must be present.
  - StructuralFunction / ReplaceFunction: a function found by its signature,
    extended to its balancing closing delimiter and to a single comment line
    directly above it.

🔄 Flow:
 1. The caller reads the document once.
 2. A Pipeline runs each Step on the output of the previous one.
 3. Any mandatory failure aborts the run with no Result.
 4. The caller writes Result.Content once.

❌ Errors:
  - *PatchNotFoundError: a literal block is absent.
  - *FunctionNotFoundError: a function signature is absent.
  - *UnbalancedDelimiterError: the depth scan ran off the end of the buffer.
  - *AmbiguousMatchError: a target that must be unique appears more than once.

Use errors.As to tell them apart after the pipeline has wrapped them.

🔍 Example:

	p := patch.NewPipeline(
		&patch.ExactBlock{Label: "import", Old: oldImport, New: newImport},
		&patch.StructuralFunction{Label: "enrich", Signature: "function enrich(", New: enrichFn},
	)
	res, err := p.Run(ctx, content)
*/
package patch
