// Package profile reads and writes the JSON call-tree format consumed by
// the flame renderer.
//
// # Overview
//
// A profile is a single nested tree of frames. The format is shared by
// common flame graph tooling, so profiles produced by collapsers and
// converters load without preprocessing:
//
//   - One root object per document
//   - Every frame carries a name and an inclusive value
//   - Children nest recursively under their caller
//
// # JSON Format
//
//	{
//	  "name": "root",
//	  "value": 100,
//	  "category": "app",
//	  "children": [
//	    {"name": "parse", "value": 30},
//	    {"name": "render", "value": 50}
//	  ]
//	}
//
// Required:
//   - name: Display name of the frame (may be empty for the root)
//
// Optional:
//   - value: Inclusive cost of the frame and everything below it
//   - category: Coloring hint ("app", "lib", "runtime", "kernel", ...)
//   - children: Frames called from this one, in left-to-right order
//
// # Lenient Decoding
//
// Profiles come from many producers and are often slightly malformed. The
// decoder recovers instead of rejecting the document: a value that is
// missing, null, or not a number is read as 0 (numeric strings such as
// "12.5" are accepted). Structural errors in the JSON itself still fail
// the whole read.
//
// # Reading
//
// Use [ReadFile] for local files, [Fetch] for http(s) sources, or [Read]
// for any io.Reader. [Load] dispatches between the two based on the source
// string:
//
//	root, err := profile.Load(ctx, "profiles/cpu.json", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Writing
//
// [Write] and [WriteFile] emit the same shape, so a loaded profile can be
// exported and re-imported identically.
//
// # Building
//
// A decoded profile is a pointer tree. [ToTree] converts it to the indexed
// form used by layout and navigation:
//
//	tree, err := profile.ToTree(root)
//
// [FromTree] reverses the conversion for export.
//
// # Concurrency
//
// Frames returned by the read functions are independent of their source
// and safe to hand to other goroutines once the call returns.
package profile
