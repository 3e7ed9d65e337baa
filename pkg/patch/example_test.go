package patch_test

import (
	"context"
	"fmt"

	"github.com/walteh/patchrc/pkg/patch"
)

func ExampleReplaceBlock() {
	out, span, err := patch.ReplaceBlock("let speed = pick(stats);", "pick(stats)", "pickSpeed(stats)", patch.OccurrenceUnique)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(out)
	fmt.Printf("Replaced: [%d, %d)\n", span.Start, span.End)

	_, _, err = patch.ReplaceBlock(out, "pick(stats)", "pickSpeed(stats)", patch.OccurrenceUnique)
	fmt.Printf("Again: %v\n", err)

	// Output:
	// let speed = pickSpeed(stats);
	// Replaced: [12, 23)
	// Again: patch block not found: "pick(stats)"
}

func ExampleLocateFunction() {
	doc := "// adds one\nfunction inc(x) {\n  if (x) { return x + 1; }\n  return 1;\n}\n\nfunction dec(x) {}\n"

	span, err := patch.LocateFunction(doc, "function inc(x)")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("%q\n", span.Text(doc))

	// Output:
	// "// adds one\nfunction inc(x) {\n  if (x) { return x + 1; }\n  return 1;\n}\n\n"
}

func ExamplePipeline_Run() {
	doc := "import { a } from './a.js';\n\n// run\nfunction run() {\n  a();\n}\n"

	p := patch.NewPipeline(
		&patch.ExactBlock{Label: "import", Old: "import { a }", New: "import { b }"},
		&patch.StructuralFunction{Label: "run", Signature: "function run()", New: "function run() {\n  b();\n}\n"},
		&patch.ExactBlock{Label: "legacy", Old: "legacy()", New: "modern()", Optional: true},
	)

	result, err := p.Run(context.Background(), doc)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Print(result.Content)
	for _, r := range result.Reports {
		fmt.Printf("%s %s %s\n", r.Kind, r.Name, r.Outcome)
	}

	// Output:
	// import { b } from './a.js';
	//
	// function run() {
	//   b();
	// }
	// replace import applied
	// function run applied
	// replace legacy skipped
}
