package term

import (
	"context"
	"sync"

	"github.com/muurk/tapestry/internal/event"
)

// Fake is an in-memory Source for tests. Events are scripted with Emit and
// every drawn frame is recorded. A Fake never touches a real terminal.
type Fake struct {
	width, height int

	events chan event.Event

	mu        sync.Mutex
	frames    []string
	frameRate float64
	started   bool
	ended     bool

	// StartErr, when set before Start, makes Start fail with it.
	StartErr error
	// DrawErr, when set, makes Draw fail after still invoking fn.
	DrawErr error
}

// NewFake returns a fake source reporting the given terminal size.
func NewFake(width, height int) *Fake {
	return &Fake{
		width:  width,
		height: height,
		events: make(chan event.Event, 1024),
	}
}

// Emit schedules ev for delivery to NextEvent.
func (f *Fake) Emit(ev event.Event) {
	f.events <- ev
}

// CloseEvents closes the event stream, making NextEvent report closure
// after the scripted events run out.
func (f *Fake) CloseEvents() {
	close(f.events)
}

// Start implements Source.
func (f *Fake) Start(frameRate float64) error {
	if f.StartErr != nil {
		return f.StartErr
	}
	f.mu.Lock()
	f.started = true
	f.frameRate = frameRate
	f.mu.Unlock()
	return nil
}

// NextEvent implements Source.
func (f *Fake) NextEvent(ctx context.Context) (event.Event, bool) {
	select {
	case <-ctx.Done():
		return nil, false
	case ev, ok := <-f.events:
		if !ok {
			return nil, false
		}
		return ev, true
	}
}

// Size implements Source.
func (f *Fake) Size() (width, height int) {
	return f.width, f.height
}

// Draw implements Source, recording the rendered frame.
func (f *Fake) Draw(fn func(*Frame)) error {
	frame := NewFrame(f.width, f.height)
	fn(frame)
	f.mu.Lock()
	f.frames = append(f.frames, frame.String())
	f.mu.Unlock()
	return f.DrawErr
}

// End implements Source.
func (f *Fake) End() error {
	f.mu.Lock()
	f.ended = true
	f.mu.Unlock()
	return nil
}

// Frames returns a copy of every frame drawn so far.
func (f *Fake) Frames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.frames...)
}

// Started reports whether Start ran.
func (f *Fake) Started() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started
}

// Ended reports whether End ran.
func (f *Fake) Ended() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ended
}

// FrameRate returns the rate passed to Start.
func (f *Fake) FrameRate() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frameRate
}
