package event

// Event is a single environment event delivered to the application loop.
// The concrete types in this package are the full set produced by the
// terminal source; a nil Event is never delivered.
type Event interface {
	isEvent()
}

// Tick is emitted at the configured frame rate. Seq is a monotonically
// increasing sequence number starting at 1 for the first tick of a session.
type Tick struct {
	Seq uint64
}

// Render requests one draw pass. It is emitted at the same cadence as Tick
// but carries no sequence number; render requests are idempotent.
type Render struct{}

// Resize reports the new terminal dimensions in cells.
type Resize struct {
	Width  int
	Height int
}

// FocusGained and FocusLost report terminal focus changes. They are only
// delivered when the terminal supports focus reporting.
type FocusGained struct{}

// FocusLost reports that the terminal lost focus.
type FocusLost struct{}

// Paste carries the text of one bracketed paste.
type Paste struct {
	Text string
}

// Error reports a non-fatal failure inside the event source, such as an
// undecodable input sequence.
type Error struct {
	Err error
}

func (Tick) isEvent()        {}
func (Render) isEvent()      {}
func (Resize) isEvent()      {}
func (FocusGained) isEvent() {}
func (FocusLost) isEvent()   {}
func (Paste) isEvent()       {}
func (Error) isEvent()       {}
