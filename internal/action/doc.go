// Package action defines the intents flowing through the application loop
// and the unbounded queue that carries them.
//
// An Action is either derived from an environment event by the orchestrator
// (Tick, Render, Quit) or produced by a component from its event or update
// handlers. Components declare their own action types; any value may travel
// through the queue, in the same way Bubble Tea treats messages as opaque
// values. The built-in types in this package are the only ones the
// orchestrator itself interprets.
//
// The Queue is a multi-producer, single-consumer FIFO. Send never blocks;
// the consumer drains with TryRecv until the queue reports empty, and
// actions enqueued during a drain are delivered within the same drain.
package action
