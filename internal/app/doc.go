// Package app runs the application loop: a single goroutine that merges the
// terminal event stream with the action queue and drives component
// lifecycle.
//
// The loop's shape is fixed. Each iteration awaits one event, derives at
// most one built-in action from it (quit hotkey, tick, render), fans the
// event out to every component, then drains the action queue completely --
// including actions enqueued by updates triggered during the drain. Quit is
// cooperative: the quit action sets a flag and the pass finishes before the
// final save and shutdown.
//
// Blocking is confined to three points: awaiting the next event, the main
// component's InitAsync during startup, and Save during the periodic
// persistence triggered by every tenth tick. Everything else is synchronous
// by contract.
package app
