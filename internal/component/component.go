// Package component defines the contract every pluggable UI unit satisfies.
//
// A component receives events, turns them into actions, mutates its state in
// Update, and renders into a frame region in Draw. The orchestrator (see
// internal/app) owns the calling discipline: HandleEvents, Update and Draw
// are called from the single loop goroutine and must not block; InitAsync
// and Save are the only operations allowed to do I/O and take a context.
//
// Embed Base to implement only the methods a component cares about.
package component

import (
	"context"

	"github.com/muurk/tapestry/internal/action"
	"github.com/muurk/tapestry/internal/event"
	"github.com/muurk/tapestry/internal/term"
)

// Component is the capability interface for a pluggable UI unit.
type Component interface {
	// RegisterActionHandler hands the component the queue producer it uses
	// to enqueue actions outside the regular return paths (for example
	// from a background goroutine). Called once before any event runs.
	// Stateless components ignore it.
	RegisterActionHandler(q *action.Queue)

	// InitAsync performs initialization that does I/O, such as loading
	// persisted state. It completes before Init and before any event
	// processing. An error aborts startup.
	InitAsync(ctx context.Context, area term.Rect) error

	// Init performs synchronous initialization with the current terminal
	// area. An error aborts startup.
	Init(area term.Rect) error

	// HandleEvents derives at most one action from an event. ev is nil for
	// poll-style invocations. It must not block and must not mutate
	// rendering state; state changes belong in Update.
	HandleEvents(ev event.Event) action.Action

	// Update applies one action to the component's state and may return a
	// follow-up action, which the orchestrator drains in the same pass.
	Update(a action.Action) action.Action

	// Draw renders the component's current state into area. It must not
	// mutate domain state. Errors degrade the frame, not the loop.
	Draw(f *term.Frame, area term.Rect) error

	// Save persists the component's durable state. Components without
	// durable state no-op.
	Save(ctx context.Context) error
}

// Base is a no-op Component implementation for embedding.
type Base struct{}

func (Base) RegisterActionHandler(*action.Queue)        {}
func (Base) InitAsync(context.Context, term.Rect) error { return nil }
func (Base) Init(term.Rect) error                       { return nil }
func (Base) HandleEvents(event.Event) action.Action     { return nil }
func (Base) Update(action.Action) action.Action         { return nil }
func (Base) Draw(*term.Frame, term.Rect) error          { return nil }
func (Base) Save(context.Context) error                 { return nil }
