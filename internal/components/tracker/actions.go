package tracker

// The tracker's intent vocabulary. HandleEvents produces these from keys;
// Update applies them. They are exported so tests and other components can
// drive the tracker through the queue.

// Move shifts the cursor by Delta, clamped to the task list.
type Move struct {
	Delta int
}

// Toggle flips the done state of the task under the cursor.
type Toggle struct{}

// Add appends a new task and moves the cursor to it.
type Add struct{}

// Delete removes the task under the cursor.
type Delete struct{}

// SetStatus updates the footer status line. Update returns it as a
// follow-up from the mutating actions, so it is drained in the same pass
// that produced it.
type SetStatus struct {
	Text string
}
