package app

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/muurk/tapestry/internal/action"
	"github.com/muurk/tapestry/internal/component"
	"github.com/muurk/tapestry/internal/components/logview"
	"github.com/muurk/tapestry/internal/config"
	"github.com/muurk/tapestry/internal/event"
	"github.com/muurk/tapestry/internal/logging"
	"github.com/muurk/tapestry/internal/term"
)

// saveEvery is the tick cadence of periodic persistence: state is saved on
// every tick whose sequence number is a multiple of this.
const saveEvery = 10

// logPaneWidth is the fixed width of the right-hand log pane.
const logPaneWidth = 75

// App owns the event source, the consumer end of the action queue, and the
// ordered component collection. Construct with New, then call Run once.
type App struct {
	frameRate  float64
	src        term.Source
	main       component.Component
	logPane    component.Component
	components []component.Component

	queue *action.Queue
}

// Option configures an App.
type Option func(*App)

// WithFrameRate sets the tick/render cadence in events per second.
func WithFrameRate(rate float64) Option {
	return func(a *App) { a.frameRate = rate }
}

// WithComponent attaches an additional component. Attachment order is the
// event fan-out and draw order.
func WithComponent(c component.Component) Option {
	return func(a *App) { a.components = append(a.components, c) }
}

// WithLogPane replaces the built-in log pane component.
func WithLogPane(c component.Component) Option {
	return func(a *App) { a.logPane = c }
}

// WithSource replaces the terminal source. Tests inject a term.Fake here.
func WithSource(src term.Source) Option {
	return func(a *App) { a.src = src }
}

// New returns an App around the given main component. Without options it
// drives the process terminal at the default frame rate and renders the
// built-in log pane.
func New(main component.Component, opts ...Option) *App {
	a := &App{
		frameRate: config.DefaultFrameRate,
		main:      main,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.src == nil {
		a.src = term.Stdio()
	}
	if a.logPane == nil {
		a.logPane = logview.New()
	}
	return a
}

// Run starts the terminal session and drives the loop until quit or error.
// The terminal is restored on every exit path; a restore failure is joined
// onto the loop's own error.
func (a *App) Run(ctx context.Context) error {
	a.queue = action.NewQueue()

	if err := a.src.Start(a.frameRate); err != nil {
		return fmt.Errorf("failed to start terminal: %w", err)
	}
	logging.Debug("app starting", zap.Float64("frame_rate", a.frameRate))

	runErr := a.run(ctx)
	a.queue.Close()
	endErr := a.src.End()
	logging.Debug("app stopped", zap.Error(runErr))
	return multierr.Append(runErr, endErr)
}

func (a *App) run(ctx context.Context) error {
	w, h := a.src.Size()
	area := term.Rect{W: w, H: h}

	a.main.RegisterActionHandler(a.queue)
	for _, c := range a.components {
		c.RegisterActionHandler(a.queue)
	}

	if err := a.main.InitAsync(ctx, area); err != nil {
		return fmt.Errorf("main component async init failed: %w", err)
	}
	if err := a.main.Init(area); err != nil {
		return fmt.Errorf("main component init failed: %w", err)
	}
	for _, c := range a.components {
		if err := c.Init(area); err != nil {
			return fmt.Errorf("component %T init failed: %w", c, err)
		}
	}

	var quit bool
	for {
		ev, ok := a.src.NextEvent(ctx)
		if !ok {
			// Source closed or context done: no more events will ever
			// arrive, so the loop ends without a final save.
			return ctx.Err()
		}

		if act := a.handleEvent(ev); act != nil {
			if err := a.send(act); err != nil {
				return err
			}
		}
		if act := a.main.HandleEvents(ev); act != nil {
			if err := a.send(act); err != nil {
				return err
			}
		}
		for _, c := range a.components {
			if act := c.HandleEvents(ev); act != nil {
				if err := a.send(act); err != nil {
					return err
				}
			}
		}

		// Drain completely: actions enqueued by updates below are picked
		// up before the pass ends, never deferred to the next event.
		for {
			act, ok := a.queue.TryRecv()
			if !ok {
				break
			}
			switch v := act.(type) {
			case action.Quit:
				quit = true
			case action.Tick:
				logging.Debug("tick", zap.Uint64("seq", v.Seq))
				if v.Seq%saveEvery == 0 {
					if err := a.save(ctx); err != nil {
						return fmt.Errorf("periodic save failed: %w", err)
					}
				}
			case action.Render:
				if err := a.render(); err != nil {
					return err
				}
			default:
				logging.Info("action", zap.String("type", fmt.Sprintf("%T", act)))
				if follow := a.main.Update(act); follow != nil {
					if err := a.send(follow); err != nil {
						return err
					}
				}
				for _, c := range a.components {
					if follow := c.Update(act); follow != nil {
						if err := a.send(follow); err != nil {
							return err
						}
					}
				}
			}
		}

		if quit {
			if err := a.save(ctx); err != nil {
				return fmt.Errorf("final save failed: %w", err)
			}
			return nil
		}
	}
}

// handleEvent is the orchestrator-level event mapping: the global quit
// hotkey plus the tick and render translations. Everything else reaches the
// loop only through component handlers.
func (a *App) handleEvent(ev event.Event) action.Action {
	switch e := ev.(type) {
	case event.Tick:
		return action.Tick{Seq: e.Seq}
	case event.Render:
		return action.Render{}
	case event.Key:
		return a.handleKey(e)
	}
	return nil
}

// handleKey maps Ctrl+C and Ctrl+Q to Quit regardless of component focus.
func (a *App) handleKey(k event.Key) action.Action {
	if k.Code == event.CodeRune && (k.Rune == 'c' || k.Rune == 'q') && k.Mod == event.ModCtrl {
		return action.Quit{}
	}
	return nil
}

// render performs one draw pass: main component on the left, log pane in a
// fixed-width column on the right, attached components over the main
// region. A component draw error degrades the frame, not the loop: it is
// re-entered into the queue as an Error action.
func (a *App) render() error {
	var sendErr error
	report := func(name string, err error) {
		if err == nil {
			return
		}
		logging.Warn("draw failed", zap.String("component", name), zap.Error(err))
		if serr := a.queue.Send(action.Error{Message: fmt.Sprintf("failed to draw %s: %v", name, err)}); serr != nil && sendErr == nil {
			sendErr = serr
		}
	}

	err := a.src.Draw(func(f *term.Frame) {
		left, right := term.SplitRight(f.Area(), logPaneWidth)
		report("main", a.main.Draw(f, left))
		report("log", a.logPane.Draw(f, right))
		for _, c := range a.components {
			report(fmt.Sprintf("%T", c), c.Draw(f, left))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to draw frame: %w", err)
	}
	return sendErr
}

// save blocks the loop on the main component's persistence. Events keep
// accumulating at the source meanwhile and are processed afterwards.
func (a *App) save(ctx context.Context) error {
	return a.main.Save(ctx)
}

// send enqueues an action; failure means the queue consumer is gone, which
// is a logic error and fatal.
func (a *App) send(act action.Action) error {
	if err := a.queue.Send(act); err != nil {
		return fmt.Errorf("failed to send action %T: %w", act, err)
	}
	return nil
}
