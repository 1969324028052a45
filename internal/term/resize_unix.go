//go:build !windows

package term

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/muurk/tapestry/internal/event"
)

// watchResize relays SIGWINCH as Resize events until shutdown.
func (t *TTY) watchResize() {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGWINCH)
		defer signal.Stop(ch)
		for {
			select {
			case <-t.done:
				return
			case <-ch:
				w, h := t.Size()
				if !t.emit(event.Resize{Width: w, Height: h}) {
					return
				}
			}
		}
	}()
}
