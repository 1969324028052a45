// Tapestry is a terminal task tracker built on a single-loop component
// runtime.
//
// The application merges terminal input, timer ticks and render requests
// into one event loop, fans them out to pluggable components, and persists
// state periodically. The built-in components are a task list (left pane)
// and a live log view (right pane); a websocket feed overlay can be
// attached with --feed.
//
// Usage:
//
//	tapestry [flags]
//
// See 'tapestry --help' for available flags. Press ctrl+q (or ctrl+c)
// inside the application to save and quit.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
