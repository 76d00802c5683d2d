// dartboard evaluates, edits and serves dartboard ring-arithmetic puzzles.
//
// Usage:
//
//	dartboard solve "s=20:i:a,5:i:s,5:o:n:2d&b=c:y,ia:sq"
//	dartboard edit op 20 innerSegment add
//	dartboard edit                      (interactive editor)
//	dartboard undo
//	dartboard history [--last N] [--version id]
//	dartboard saved list|load|delete|clear
//	dartboard replay fixture.json...
//	dartboard export-fixture --out fixture.json
//	dartboard serve
//	dartboard mcp
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
