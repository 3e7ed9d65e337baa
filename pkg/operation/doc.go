/*
Package operation runs a plan against the documents it names.

	+-------------+      +-------------+      +-------------+
	|   config    | ---> |  prepare    | ---> |   write     |
	| (load plan) |      | (errgroup)  |      | (atomic)    |
	+-------------+      +------+------+      +-------------+
	                            |
	                     +------+------+
	                     |   patch     |
	                     | (pipeline)  |
	                     +-------------+

🔄 Flow:
1. Load and validate the plan
2. Expand each document path (doublestar globs) relative to the plan
3. Read each document once and run its pipeline, one goroutine per document
4. Only if every document succeeded, write the changed ones atomically

A failed step anywhere means nothing is written. With backups on, a
failed write restores the documents already written in the same run.

🔍 Example:

	err := operation.Apply(ctx, operation.Options{
		ConfigPath: ".patchrc.hcl",
		Backup:     true,
		Reporter:   status.NewReporter(ctx, os.Stdout),
	})
*/
package operation
