package tracker

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/muurk/tapestry/internal/action"
	"github.com/muurk/tapestry/internal/event"
	"github.com/muurk/tapestry/internal/term"
)

func newTestComponent(t *testing.T) *Component {
	t.Helper()
	c := New(filepath.Join(t.TempDir(), "state.yaml"))
	c.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return c
}

func apply(c *Component, acts ...action.Action) {
	for _, a := range acts {
		for a != nil {
			a = c.Update(a)
		}
	}
}

func TestHandleEventsKeymap(t *testing.T) {
	c := newTestComponent(t)
	tests := []struct {
		name string
		ev   event.Event
		want action.Action
	}{
		{"j moves down", event.RuneKey('j'), Move{Delta: 1}},
		{"down arrow moves down", event.Key{Code: event.CodeDown}, Move{Delta: 1}},
		{"k moves up", event.RuneKey('k'), Move{Delta: -1}},
		{"up arrow moves up", event.Key{Code: event.CodeUp}, Move{Delta: -1}},
		{"space toggles", event.Key{Code: event.CodeSpace}, Toggle{}},
		{"n adds", event.RuneKey('n'), Add{}},
		{"d deletes", event.RuneKey('d'), Delete{}},
		{"unbound key ignored", event.RuneKey('x'), nil},
		{"modified key ignored", event.Ctrl('j'), nil},
		{"nil event ignored", nil, nil},
		{"tick ignored", event.Tick{Seq: 3}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.HandleEvents(tt.ev); got != tt.want {
				t.Errorf("HandleEvents(%v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}

func TestUpdateAddToggleDelete(t *testing.T) {
	c := newTestComponent(t)

	follow := c.Update(Add{})
	if _, ok := follow.(SetStatus); !ok {
		t.Fatalf("Update(Add) follow-up = %T, want SetStatus", follow)
	}
	apply(c, follow, Add{})
	if len(c.tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(c.tasks))
	}
	if c.cursor != 1 {
		t.Errorf("cursor = %d, want 1 (on the new task)", c.cursor)
	}

	apply(c, Toggle{})
	if !c.tasks[1].Done {
		t.Error("Toggle did not mark the cursored task done")
	}
	apply(c, Toggle{})
	if c.tasks[1].Done {
		t.Error("second Toggle did not reopen the task")
	}

	apply(c, Delete{})
	if len(c.tasks) != 1 {
		t.Fatalf("len(tasks) after delete = %d, want 1", len(c.tasks))
	}
	if c.tasks[0].Title != "task 1" {
		t.Errorf("remaining task = %q, want task 1", c.tasks[0].Title)
	}
	if c.cursor != 0 {
		t.Errorf("cursor after delete = %d, want 0", c.cursor)
	}
}

func TestUpdateMoveClamps(t *testing.T) {
	c := newTestComponent(t)
	apply(c, Add{}, Add{}, Add{})

	apply(c, Move{Delta: -10})
	if c.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", c.cursor)
	}
	apply(c, Move{Delta: 10})
	if c.cursor != 2 {
		t.Errorf("cursor = %d, want clamped to 2", c.cursor)
	}
}

func TestUpdateOnEmptyList(t *testing.T) {
	c := newTestComponent(t)
	// None of these may panic or produce a follow-up on an empty list.
	for _, a := range []action.Action{Toggle{}, Delete{}, Move{Delta: 1}} {
		if follow := c.Update(a); follow != nil {
			t.Errorf("Update(%T) on empty list = %v, want nil", a, follow)
		}
	}
}

func TestUpdateError(t *testing.T) {
	c := newTestComponent(t)
	if follow := c.Update(action.Error{Message: "boom"}); follow != nil {
		t.Errorf("Update(Error) follow-up = %v, want nil", follow)
	}
	if c.lastErr != "boom" {
		t.Errorf("lastErr = %q, want boom", c.lastErr)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")
	ctx := context.Background()

	c := New(path)
	apply(c, Add{}, Add{}, Toggle{})
	if err := c.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded := New(path)
	if err := reloaded.InitAsync(ctx, term.Rect{W: 80, H: 24}); err != nil {
		t.Fatalf("InitAsync() error = %v", err)
	}
	tasks := reloaded.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("reloaded %d tasks, want 2", len(tasks))
	}
	if !tasks[1].Done {
		t.Error("reloaded task 2 lost its done flag")
	}
	if tasks[0].Done {
		t.Error("reloaded task 1 gained a done flag")
	}
}

func TestInitAsyncMissingFile(t *testing.T) {
	c := newTestComponent(t)
	if err := c.InitAsync(context.Background(), term.Rect{W: 80, H: 24}); err != nil {
		t.Fatalf("InitAsync() with no state file error = %v", err)
	}
	if len(c.tasks) != 0 {
		t.Errorf("fresh component has %d tasks, want 0", len(c.tasks))
	}
}

func TestDraw(t *testing.T) {
	c := newTestComponent(t)
	apply(c, Add{}, Add{})

	f := term.NewFrame(60, 10)
	if err := c.Draw(f, f.Area()); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	out := f.String()
	if !strings.Contains(out, "Tasks (2)") {
		t.Errorf("frame missing title:\n%s", out)
	}
	if !strings.Contains(out, "task 1") || !strings.Contains(out, "task 2") {
		t.Errorf("frame missing task rows:\n%s", out)
	}
	if !strings.Contains(out, "added task 2") {
		t.Errorf("frame missing status line:\n%s", out)
	}
}

func TestDrawTooSmall(t *testing.T) {
	c := newTestComponent(t)
	f := term.NewFrame(10, 2)
	if err := c.Draw(f, f.Area()); err == nil {
		t.Error("Draw() into a 2-row area should fail")
	}
}
