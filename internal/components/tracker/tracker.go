package tracker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/tapestry/internal/action"
	"github.com/muurk/tapestry/internal/component"
	"github.com/muurk/tapestry/internal/event"
	"github.com/muurk/tapestry/internal/logging"
	"github.com/muurk/tapestry/internal/term"
)

// Component is the main component: the task list plus its cursor and
// status line. All fields are owned by the loop goroutine.
type Component struct {
	component.Base

	path string

	tasks   []Task
	cursor  int
	status  string
	lastErr string

	// now is replaceable in tests.
	now func() time.Time
}

// New returns a tracker persisting to the given state file path.
func New(statePath string) *Component {
	return &Component{
		path:   statePath,
		status: "ready",
		now:    time.Now,
	}
}

// Tasks returns the current task list. Exposed for tests.
func (c *Component) Tasks() []Task {
	return append([]Task(nil), c.tasks...)
}

// InitAsync implements component.Component: it loads persisted state
// before the loop starts.
func (c *Component) InitAsync(ctx context.Context, area term.Rect) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tasks, err := loadState(c.path)
	if err != nil {
		return err
	}
	c.tasks = tasks
	logging.Info("tracker state loaded",
		zap.String("path", c.path),
		zap.Int("tasks", len(c.tasks)),
	)
	return nil
}

// HandleEvents implements component.Component. It only translates keys
// into tracker actions; mutation happens in Update.
func (c *Component) HandleEvents(ev event.Event) action.Action {
	key, ok := ev.(event.Key)
	if !ok || key.Mod != 0 {
		return nil
	}
	switch {
	case key.Code == event.CodeDown || key.Rune == 'j':
		return Move{Delta: 1}
	case key.Code == event.CodeUp || key.Rune == 'k':
		return Move{Delta: -1}
	case key.Code == event.CodeSpace:
		return Toggle{}
	case key.Rune == 'n':
		return Add{}
	case key.Rune == 'd':
		return Delete{}
	}
	return nil
}

// Update implements component.Component.
func (c *Component) Update(a action.Action) action.Action {
	switch v := a.(type) {
	case Move:
		c.cursor = clamp(c.cursor+v.Delta, 0, len(c.tasks)-1)
		return nil
	case Toggle:
		if len(c.tasks) == 0 {
			return nil
		}
		t := &c.tasks[c.cursor]
		t.Done = !t.Done
		if t.Done {
			return SetStatus{Text: fmt.Sprintf("done: %s", t.Title)}
		}
		return SetStatus{Text: fmt.Sprintf("reopened: %s", t.Title)}
	case Add:
		task := Task{
			Title:     fmt.Sprintf("task %d", len(c.tasks)+1),
			CreatedAt: c.now(),
		}
		c.tasks = append(c.tasks, task)
		c.cursor = len(c.tasks) - 1
		return SetStatus{Text: fmt.Sprintf("added %s", task.Title)}
	case Delete:
		if len(c.tasks) == 0 {
			return nil
		}
		removed := c.tasks[c.cursor]
		c.tasks = append(c.tasks[:c.cursor], c.tasks[c.cursor+1:]...)
		c.cursor = clamp(c.cursor, 0, len(c.tasks)-1)
		return SetStatus{Text: fmt.Sprintf("deleted %s", removed.Title)}
	case SetStatus:
		c.status = v.Text
		return nil
	case action.Error:
		c.lastErr = v.Message
		return nil
	}
	return nil
}

// Save implements component.Component: the orchestrator calls it on every
// tenth tick and once more on quit.
func (c *Component) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := saveState(c.path, c.tasks); err != nil {
		return err
	}
	logging.Debug("tracker state saved", zap.Int("tasks", len(c.tasks)))
	return nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
