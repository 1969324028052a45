package term

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/cancelreader"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	xterm "golang.org/x/term"

	"github.com/muurk/tapestry/internal/event"
	"github.com/muurk/tapestry/internal/logging"
)

// Terminal control sequences used to enter and leave interactive mode.
const (
	enterAltScreen = "\x1b[?1049h"
	exitAltScreen  = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	enableMouse    = "\x1b[?1002h\x1b[?1006h"
	disableMouse   = "\x1b[?1006l\x1b[?1002l"
	enableFocus    = "\x1b[?1004h"
	disableFocus   = "\x1b[?1004l"
	enablePaste    = "\x1b[?2004h"
	disablePaste   = "\x1b[?2004l"
	cursorHome     = "\x1b[H"
	eraseLine      = "\x1b[K"
)

// TTY is the Source implementation for a real terminal. It puts the input
// file into raw mode, switches the output to the alternate screen, and runs
// two background producers: a ticker emitting Tick/Render pairs at the
// frame rate and a reader decoding input bytes into events. Both stop when
// End is called.
type TTY struct {
	in, out *os.File

	events chan event.Event
	done   chan struct{}
	wg     sync.WaitGroup

	reader cancelreader.CancelReader
	state  *xterm.State

	started bool
	endOnce sync.Once
	endErr  error
}

// NewTTY returns an unstarted TTY reading from in and writing to out.
func NewTTY(in, out *os.File) *TTY {
	return &TTY{
		in:     in,
		out:    out,
		events: make(chan event.Event, 256),
		done:   make(chan struct{}),
	}
}

// Stdio returns a TTY bound to the process's stdin and stdout.
func Stdio() *TTY {
	return NewTTY(os.Stdin, os.Stdout)
}

// Start implements Source.
func (t *TTY) Start(frameRate float64) error {
	if frameRate <= 0 {
		return fmt.Errorf("invalid frame rate %v", frameRate)
	}
	fd := int(t.in.Fd())
	if !xterm.IsTerminal(fd) {
		return fmt.Errorf("input is not a terminal")
	}

	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	t.state = state

	reader, err := cancelreader.NewReader(t.in)
	if err != nil {
		_ = xterm.Restore(fd, state)
		return fmt.Errorf("failed to open input reader: %w", err)
	}
	t.reader = reader

	if _, err := t.out.WriteString(enterAltScreen + hideCursor + enableMouse + enableFocus + enablePaste); err != nil {
		_ = xterm.Restore(fd, state)
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.started = true

	w, h := t.Size()
	logging.Debug("terminal started",
		zap.Float64("frame_rate", frameRate),
		zap.Int("width", w),
		zap.Int("height", h),
	)

	t.wg.Add(2)
	go t.readLoop()
	go t.tickLoop(frameRate)
	t.watchResize()

	// Deliver the starting size so components need not query it.
	t.emit(event.Resize{Width: w, Height: h})
	return nil
}

// NextEvent implements Source.
func (t *TTY) NextEvent(ctx context.Context) (event.Event, bool) {
	select {
	case <-ctx.Done():
		return nil, false
	case ev, ok := <-t.events:
		if !ok {
			return nil, false
		}
		return ev, true
	}
}

// Size implements Source. It falls back to 80x24 when the terminal size
// cannot be queried.
func (t *TTY) Size() (width, height int) {
	w, h, err := xterm.GetSize(int(t.out.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// Draw implements Source. The frame is written with a home-cursor reposition
// and per-row erase rather than a full clear, which avoids flicker on
// terminals without synchronized output.
func (t *TTY) Draw(fn func(*Frame)) error {
	w, h := t.Size()
	f := NewFrame(w, h)
	fn(f)

	var b strings.Builder
	b.WriteString(cursorHome)
	for i, line := range f.lines {
		b.WriteString(line)
		b.WriteString(eraseLine)
		if i < len(f.lines)-1 {
			b.WriteString("\r\n")
		}
	}
	if _, err := t.out.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to flush frame: %w", err)
	}
	return nil
}

// End implements Source. The first call tears down the producers and
// restores the terminal; later calls return the first call's result.
func (t *TTY) End() error {
	t.endOnce.Do(func() {
		if !t.started {
			return
		}
		close(t.done)
		t.reader.Cancel()
		t.wg.Wait()
		_ = t.reader.Close()
		close(t.events)

		var err error
		if _, werr := t.out.WriteString(disablePaste + disableFocus + disableMouse + showCursor + exitAltScreen); werr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to reset terminal modes: %w", werr))
		}
		if rerr := xterm.Restore(int(t.in.Fd()), t.state); rerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to restore terminal: %w", rerr))
		}
		t.endErr = err
		logging.Debug("terminal restored", zap.Error(err))
	})
	return t.endErr
}

// emit delivers ev unless the source is shutting down. It reports whether
// the producer should keep running.
func (t *TTY) emit(ev event.Event) bool {
	select {
	case t.events <- ev:
		return true
	case <-t.done:
		return false
	}
}

// readLoop decodes input bytes into events until the reader is cancelled.
func (t *TTY) readLoop() {
	defer t.wg.Done()
	var pending []byte
	buf := make([]byte, 256)
	for {
		n, err := t.reader.Read(buf)
		if err != nil {
			// Cancelled on shutdown, or the input closed underneath us.
			if !errors.Is(err, cancelreader.ErrCanceled) {
				t.emit(event.Error{Err: err})
			}
			return
		}
		pending = append(pending, buf[:n]...)
		for len(pending) > 0 {
			ev, consumed := decode(pending)
			if consumed == 0 {
				// A bare ESC with nothing following in this read is taken
				// as the Esc key. An escape sequence split across reads
				// can misfire here, but terminals deliver sequences in one
				// write in practice.
				if len(pending) == 1 && pending[0] == esc {
					pending = pending[:0]
					if !t.emit(event.Key{Code: event.CodeEsc}) {
						return
					}
				}
				break
			}
			pending = pending[consumed:]
			if ev == nil {
				continue
			}
			if !t.emit(ev) {
				return
			}
		}
	}
}

// tickLoop produces Tick and Render events at the frame rate. The sequence
// number starts at 1 and only ever increases within a session.
func (t *TTY) tickLoop(frameRate float64) {
	defer t.wg.Done()
	period := time.Duration(float64(time.Second) / frameRate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	var seq uint64
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			seq++
			if !t.emit(event.Tick{Seq: seq}) {
				return
			}
			if !t.emit(event.Render{}) {
				return
			}
		}
	}
}
