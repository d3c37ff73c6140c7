// Command jstranslate batch-translates ES5+ES6-subset JavaScript into the
// indented, dynamically-typed target scripting language via the
// Parse -> Analyze -> Transform -> Emit -> Assemble pipeline (spec.md §2).
//
// Grounded on the pack's cobra-based CLI entry points (codenerd/cmd/nerd):
// one rootCmd, one subcommand per verb, zap for structured logging instead
// of fmt.Println, and flags bound directly to the subcommand rather than
// persistent global state.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeForError(err))
	}
}

// exitCodeForError maps a top-level Execute error to spec.md §6's process
// exit contract when the error didn't already flow through runConvert's own
// os.Exit(code) path (e.g. flag-parsing failures).
func exitCodeForError(err error) int {
	if err == nil {
		return 0
	}
	return 2
}
