// Package event defines the environment events fed into the application
// loop: timer ticks, render requests, keyboard and mouse input, terminal
// resizes, and focus changes.
//
// Events are facts about the outside world. They are produced only by the
// terminal event source (see internal/term), are immutable once produced,
// and are never persisted. Components react to events by returning actions
// (see internal/action); they never construct events themselves.
package event
