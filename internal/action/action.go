package action

// Action is an intent travelling through the queue. The orchestrator gives
// special treatment to the types declared in this package; every other value
// is fanned out to component Update handlers unchanged. Component packages
// declare their own action types alongside the component that consumes them.
type Action interface{}

// Tick is derived from an event.Tick and carries its sequence number. The
// orchestrator persists application state on every tenth tick.
type Tick struct {
	Seq uint64
}

// Render triggers one synchronous draw pass.
type Render struct{}

// Quit requests a graceful shutdown. The current drain pass completes
// before the loop saves and exits.
type Quit struct{}

// Error carries a non-fatal failure, such as a component draw error. It is
// fanned out to every component so one of them (typically a status or log
// pane) can surface it.
type Error struct {
	Message string
}
