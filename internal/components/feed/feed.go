// Package feed streams text messages from a websocket endpoint into the
// action queue.
//
// It exists to exercise the attached-component surface end to end: it uses
// its registered queue producer from a background goroutine, defines its
// own action type, and renders as an overlay strip over the main region.
// The connection is opened during InitAsync, so an unreachable endpoint
// aborts startup like any other init failure.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/tapestry/internal/action"
	"github.com/muurk/tapestry/internal/component"
	"github.com/muurk/tapestry/internal/event"
	"github.com/muurk/tapestry/internal/logging"
	"github.com/muurk/tapestry/internal/term"
)

// maxRecent is how many messages the overlay strip retains.
const maxRecent = 3

// Message is the feed's action type: one received text message.
type Message struct {
	Text string
	At   time.Time
}

// Component streams a websocket feed into the queue and shows the most
// recent messages. The recent list is mutated only in Update, on the loop
// goroutine; the reader goroutine communicates exclusively through the
// queue.
type Component struct {
	component.Base

	url      string
	queue    *action.Queue
	conn     *websocket.Conn
	pumpDone chan struct{}

	recent []Message
}

// New returns a feed component for the given websocket URL.
func New(url string) *Component {
	return &Component{url: url}
}

// RegisterActionHandler implements component.Component.
func (c *Component) RegisterActionHandler(q *action.Queue) {
	c.queue = q
}

// InitAsync implements component.Component: it dials the endpoint and
// starts the reader goroutine.
func (c *Component) InitAsync(ctx context.Context, area term.Rect) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to feed %s: %w", c.url, err)
	}
	c.conn = conn
	c.pumpDone = make(chan struct{})
	logging.Info("feed connected", zap.String("url", c.url))
	go c.pump()
	return nil
}

// Close shuts the connection and waits for the reader goroutine to exit.
// Call it after the loop has stopped; it is a no-op when the feed never
// connected.
func (c *Component) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	<-c.pumpDone
	return err
}

// pump forwards received messages into the queue until the connection or
// the queue closes.
func (c *Component) pump() {
	defer close(c.pumpDone)
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			logging.Warn("feed closed", zap.String("url", c.url), zap.Error(err))
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		if err := c.queue.Send(Message{Text: string(data), At: time.Now()}); err != nil {
			// The loop is gone; shutdown is already underway.
			return
		}
	}
}

// HandleEvents implements component.Component. The feed reacts to no
// events; its input arrives through the queue.
func (c *Component) HandleEvents(ev event.Event) action.Action {
	return nil
}

// Update implements component.Component.
func (c *Component) Update(a action.Action) action.Action {
	if m, ok := a.(Message); ok {
		c.recent = append(c.recent, m)
		if len(c.recent) > maxRecent {
			c.recent = c.recent[len(c.recent)-maxRecent:]
		}
	}
	return nil
}

// Recent returns the retained messages, oldest first. Exposed for tests.
func (c *Component) Recent() []Message {
	return append([]Message(nil), c.recent...)
}
