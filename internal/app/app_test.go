package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/muurk/tapestry/internal/action"
	"github.com/muurk/tapestry/internal/event"
	"github.com/muurk/tapestry/internal/term"
)

// recorder is a scriptable component that traces every lifecycle call.
type recorder struct {
	name  string
	trace *[]string

	queue *action.Queue

	events  []event.Event
	updates []action.Action
	saves   int
	draws   int

	initAsyncErr error
	initErr      error
	drawErr      error
	saveErr      error

	onEvent  func(ev event.Event) action.Action
	onUpdate func(a action.Action) action.Action
}

func (r *recorder) record(what string) {
	if r.trace != nil {
		*r.trace = append(*r.trace, r.name+"."+what)
	}
}

func (r *recorder) RegisterActionHandler(q *action.Queue) {
	r.record("register")
	r.queue = q
}

func (r *recorder) InitAsync(ctx context.Context, area term.Rect) error {
	r.record("initAsync")
	return r.initAsyncErr
}

func (r *recorder) Init(area term.Rect) error {
	r.record("init")
	return r.initErr
}

func (r *recorder) HandleEvents(ev event.Event) action.Action {
	r.events = append(r.events, ev)
	if r.onEvent != nil {
		return r.onEvent(ev)
	}
	return nil
}

func (r *recorder) Update(a action.Action) action.Action {
	r.updates = append(r.updates, a)
	if r.onUpdate != nil {
		return r.onUpdate(a)
	}
	return nil
}

func (r *recorder) Draw(f *term.Frame, area term.Rect) error {
	r.draws++
	if r.drawErr != nil {
		return r.drawErr
	}
	f.SetContent(area, strings.ToUpper(r.name))
	return nil
}

func (r *recorder) Save(ctx context.Context) error {
	r.record("save")
	r.saves++
	return r.saveErr
}

// countByType counts recorded updates of the same type as want.
func countByType(updates []action.Action, want action.Action) int {
	n := 0
	for _, u := range updates {
		if fmt.Sprintf("%T", u) == fmt.Sprintf("%T", want) && u == want {
			n++
		}
	}
	return n
}

var ctrlQ = event.Ctrl('q')

func newHarness(opts ...Option) (*App, *term.Fake, *recorder) {
	src := term.NewFake(120, 30)
	main := &recorder{name: "main"}
	opts = append([]Option{WithSource(src)}, opts...)
	return New(main, opts...), src, main
}

func TestStartupOrder(t *testing.T) {
	var trace []string
	src := term.NewFake(120, 30)
	main := &recorder{name: "main", trace: &trace}
	extra := &recorder{name: "extra", trace: &trace}
	a := New(main, WithSource(src), WithComponent(extra), WithFrameRate(8))

	src.Emit(ctrlQ)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{
		"main.register", "extra.register",
		"main.initAsync", "main.init",
		"extra.init",
		"main.save", // final save on quit
	}
	if fmt.Sprint(trace) != fmt.Sprint(want) {
		t.Errorf("lifecycle trace = %v, want %v", trace, want)
	}
	if main.queue == nil || extra.queue == nil {
		t.Error("components did not receive the queue producer")
	}
	if src.FrameRate() != 8 {
		t.Errorf("source frame rate = %v, want 8", src.FrameRate())
	}
	if !src.Ended() {
		t.Error("source was not ended on the quit path")
	}
}

func TestTickSaveCadence(t *testing.T) {
	a, src, main := newHarness()

	src.Emit(event.Tick{Seq: 7})
	src.Emit(event.Tick{Seq: 10})
	src.Emit(event.Tick{Seq: 11})
	src.Emit(event.Tick{Seq: 20})
	src.Emit(ctrlQ)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Two periodic saves (ticks 10 and 20) plus exactly one final save.
	if main.saves != 3 {
		t.Errorf("saves = %d, want 3", main.saves)
	}
	// Built-in actions are never fanned out to Update.
	for _, u := range main.updates {
		switch u.(type) {
		case action.Tick, action.Render, action.Quit:
			t.Errorf("built-in action %T leaked into Update", u)
		}
	}
}

func TestQuitSavesExactlyOnce(t *testing.T) {
	a, src, main := newHarness()
	src.Emit(ctrlQ)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if main.saves != 1 {
		t.Errorf("saves = %d, want exactly the final save", main.saves)
	}
}

func TestQuitHotkeyOverridesComponentHandling(t *testing.T) {
	type claimed struct{ key string }
	a, src, main := newHarness()
	// The main component also reacts to the quit chord; the global
	// interception must still quit.
	main.onEvent = func(ev event.Event) action.Action {
		if k, ok := ev.(event.Key); ok {
			return claimed{key: k.String()}
		}
		return nil
	}

	src.Emit(ctrlQ)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if main.saves != 1 {
		t.Errorf("saves = %d, want 1 (loop must have quit)", main.saves)
	}
	if n := countByType(main.updates, claimed{key: "ctrl+q"}); n != 1 {
		t.Errorf("component's own action delivered %d times, want 1", n)
	}
}

func TestCtrlCAlsoQuits(t *testing.T) {
	a, src, main := newHarness()
	src.Emit(event.Ctrl('c'))
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if main.saves != 1 {
		t.Errorf("saves = %d, want 1", main.saves)
	}
}

func TestPlainQDoesNotQuit(t *testing.T) {
	a, src, main := newHarness()
	src.Emit(event.RuneKey('q'))
	src.Emit(ctrlQ)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// Both keys reached the component; only the chord quit the loop.
	if len(main.events) != 2 {
		t.Errorf("component saw %d events, want 2", len(main.events))
	}
}

type ping struct{}
type pong struct{}

func TestSamePassDrainOfFollowUps(t *testing.T) {
	src := term.NewFake(120, 30)
	main := &recorder{name: "main"}
	extra := &recorder{name: "extra"}
	main.onEvent = func(ev event.Event) action.Action {
		if k, ok := ev.(event.Key); ok && k.Rune == 'p' {
			return ping{}
		}
		return nil
	}
	main.onUpdate = func(a action.Action) action.Action {
		if _, ok := a.(ping); ok {
			return pong{}
		}
		return nil
	}
	a := New(main, WithSource(src), WithComponent(extra))

	src.Emit(event.RuneKey('p'))
	src.Emit(ctrlQ)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The follow-up produced mid-drain is delivered in the same pass, in
	// FIFO order after its trigger.
	want := []action.Action{ping{}, pong{}}
	if len(extra.updates) != 2 || extra.updates[0] != want[0] || extra.updates[1] != want[1] {
		t.Errorf("attached updates = %v, want %v", extra.updates, want)
	}
}

func TestRenderSplitsPanes(t *testing.T) {
	src := term.NewFake(120, 30)
	main := &recorder{name: "main"}
	logPane := &recorder{name: "logpane"}
	extra := &recorder{name: "extra"}
	a := New(main, WithSource(src), WithLogPane(logPane), WithComponent(extra))

	src.Emit(event.Render{})
	src.Emit(ctrlQ)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	frames := src.Frames()
	if len(frames) != 1 {
		t.Fatalf("drew %d frames, want 1", len(frames))
	}
	row := strings.Split(frames[0], "\n")[0]
	// Left pane fills 120-75=45 columns; the log pane starts at column 45.
	if !strings.HasPrefix(row, "EXTRA") {
		t.Errorf("left pane row = %q, want the attached overlay drawn over main", row)
	}
	if !strings.Contains(row[45:], "LOGPANE") {
		t.Errorf("right pane row = %q, want the log pane", row[45:])
	}
	if main.draws != 1 || logPane.draws != 1 || extra.draws != 1 {
		t.Errorf("draw counts main=%d log=%d extra=%d, want 1 each", main.draws, logPane.draws, extra.draws)
	}
}

func TestDrawFailureIsIsolated(t *testing.T) {
	src := term.NewFake(120, 30)
	main := &recorder{name: "main", drawErr: errors.New("main draw broke")}
	logPane := &recorder{name: "logpane"}
	extra := &recorder{name: "extra"}
	a := New(main, WithSource(src), WithLogPane(logPane), WithComponent(extra))

	src.Emit(event.Render{})
	src.Emit(ctrlQ)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v (draw failures must not abort the loop)", err)
	}

	if logPane.draws != 1 || extra.draws != 1 {
		t.Errorf("draw counts log=%d extra=%d, want 1 each despite main failing", logPane.draws, extra.draws)
	}

	// The failure came back around as an Error action, fanned out exactly
	// once to every updating component in the same pass.
	wantErr := 0
	for _, u := range main.updates {
		if e, ok := u.(action.Error); ok {
			wantErr++
			if !strings.Contains(e.Message, "main draw broke") {
				t.Errorf("Error message = %q, want the draw error", e.Message)
			}
		}
	}
	if wantErr != 1 {
		t.Errorf("main saw %d Error actions, want 1", wantErr)
	}
	errCount := 0
	for _, u := range extra.updates {
		if _, ok := u.(action.Error); ok {
			errCount++
		}
	}
	if errCount != 1 {
		t.Errorf("attached saw %d Error actions, want 1", errCount)
	}
}

func TestUpdateErrorFansOutOnce(t *testing.T) {
	src := term.NewFake(120, 30)
	main := &recorder{name: "main"}
	extra := &recorder{name: "extra"}
	main.onEvent = func(ev event.Event) action.Action {
		if k, ok := ev.(event.Key); ok && k.Rune == 'b' {
			return ping{}
		}
		return nil
	}
	main.onUpdate = func(a action.Action) action.Action {
		if _, ok := a.(ping); ok {
			return action.Error{Message: "x"}
		}
		return nil
	}
	a := New(main, WithSource(src), WithComponent(extra))

	src.Emit(event.RuneKey('b'))
	src.Emit(ctrlQ)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if n := countByType(main.updates, action.Error{Message: "x"}); n != 1 {
		t.Errorf("main saw Error %d times, want exactly 1", n)
	}
	if n := countByType(extra.updates, action.Error{Message: "x"}); n != 1 {
		t.Errorf("attached saw Error %d times, want exactly 1", n)
	}
}

func TestInitAsyncFailureAbortsStartup(t *testing.T) {
	a, src, main := newHarness()
	main.initAsyncErr = errors.New("load failed")

	err := a.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "load failed") {
		t.Fatalf("Run() error = %v, want the init failure", err)
	}
	if len(main.events) != 0 {
		t.Error("events were processed despite failed startup")
	}
	if !src.Ended() {
		t.Error("terminal was not restored on the failure path")
	}
}

func TestStartFailure(t *testing.T) {
	a, src, main := newHarness()
	src.StartErr = errors.New("no tty")
	err := a.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no tty") {
		t.Fatalf("Run() error = %v, want the start failure", err)
	}
	if main.saves != 0 {
		t.Error("save ran without a started session")
	}
}

func TestSaveFailureIsFatal(t *testing.T) {
	a, src, main := newHarness()
	main.saveErr = errors.New("disk full")

	src.Emit(event.Tick{Seq: 10})
	err := a.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Run() error = %v, want the save failure", err)
	}
	if !src.Ended() {
		t.Error("terminal was not restored after the save failure")
	}
}

func TestSourceClosureExitsWithoutSave(t *testing.T) {
	a, src, main := newHarness()
	src.CloseEvents()
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if main.saves != 0 {
		t.Errorf("saves = %d, want 0 on source closure", main.saves)
	}
	if !src.Ended() {
		t.Error("source was not ended")
	}
}

func TestContextCancellation(t *testing.T) {
	a, src, _ := newHarness()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := a.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if !src.Ended() {
		t.Error("source was not ended on cancellation")
	}
}
