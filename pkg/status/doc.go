/*
Package status shows the user what a patch run did.

	+-------------+      +-------------+
	|   Result    | ---> |  Reporter   | ---> terminal
	| (per file)  |      | (pterm/log) |
	+-------------+      +------+------+
	                            |
	                     +------+------+
	                     | UnifiedDiff |
	                     | (dry runs)  |
	                     +-------------+

🎯 Purpose:
- One line per patch step: applied, skipped or failed
- Unified diffs of the pending change for dry runs
- Every printed event is mirrored to the zerolog logger in the context

🔍 Example:

	reporter := status.NewReporter(ctx, os.Stdout)
	reporter.Document("index.html", result)
	if err := reporter.Diff("index.html", result); err != nil {
		return err
	}
	reporter.Success("patched 1 document")
*/
package status
