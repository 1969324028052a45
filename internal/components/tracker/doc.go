// Package tracker implements the main component: a small task list with
// durable state.
//
// State loads asynchronously from a YAML file before the loop starts and is
// written back by the orchestrator's periodic persistence. Key handling
// follows the component contract strictly: HandleEvents only translates
// keys into the package's action types, and all mutation happens in Update.
package tracker
