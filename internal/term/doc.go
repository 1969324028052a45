// Package term owns the terminal session and produces the event stream the
// application loop consumes.
//
// The Source interface abstracts the terminal: starting it enters raw mode
// and the alternate screen and begins background production of Tick and
// Render events at the configured frame rate, merged with decoded keyboard,
// mouse, resize, focus and paste input. NextEvent is the loop's single
// suspension point; Draw renders one frame synchronously through a Frame
// handle; End restores the terminal and must run on every exit path.
//
// TTY is the real implementation on top of golang.org/x/term raw-mode
// handling and a cancellable stdin reader. Fake is an in-memory Source for
// tests, fed with scripted events and recording every drawn frame.
//
// A Frame is a line grid addressed by Rect regions. Regions are filled with
// ANSI-styled strings (typically produced with lipgloss) and composited
// width-aware, so overlapping draws behave like overlays rather than
// corrupting earlier escape sequences.
package term
