//go:build windows

package term

import (
	"time"

	"github.com/muurk/tapestry/internal/event"
)

// watchResize polls the console size; Windows has no SIGWINCH equivalent
// usable from a plain console application.
func (t *TTY) watchResize() {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		lastW, lastH := t.Size()
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C:
				w, h := t.Size()
				if w == lastW && h == lastH {
					continue
				}
				lastW, lastH = w, h
				if !t.emit(event.Resize{Width: w, Height: h}) {
					return
				}
			}
		}
	}()
}
