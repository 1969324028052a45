package term

import (
	"context"

	"github.com/muurk/tapestry/internal/event"
)

// Source produces the time-ordered event sequence for one terminal session.
// A Source is single-use: once closed it cannot be restarted.
type Source interface {
	// Start places the terminal in interactive mode and begins producing
	// Tick and Render events at frameRate per second, merged with decoded
	// input events. It fails when the terminal cannot be set up.
	Start(frameRate float64) error

	// NextEvent blocks until the next event is available. ok is false when
	// the source has been closed or ctx is done; no further events will be
	// delivered after that.
	NextEvent(ctx context.Context) (ev event.Event, ok bool)

	// Size returns the current terminal dimensions in cells.
	Size() (width, height int)

	// Draw renders one frame by invoking fn with a frame sized to the
	// current terminal dimensions, then flushing it to the terminal. It
	// never blocks on events and is safe to call between NextEvent calls.
	Draw(fn func(*Frame)) error

	// End restores the terminal to its prior mode and stops event
	// production. It must be called on every exit path and is idempotent.
	End() error
}

// Rect is a rectangular region of the terminal in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rect has no drawable area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// SplitRight splits area horizontally into a left region filling the
// remaining width and a right region of at most rightWidth columns. When
// the area is narrower than rightWidth the right region takes everything
// and the left region is empty.
func SplitRight(area Rect, rightWidth int) (left, right Rect) {
	if rightWidth > area.W {
		rightWidth = area.W
	}
	left = Rect{X: area.X, Y: area.Y, W: area.W - rightWidth, H: area.H}
	right = Rect{X: area.X + left.W, Y: area.Y, W: rightWidth, H: area.H}
	return left, right
}
