// Package flow dispatches messages across a graph of independently
// scheduled systems.
//
// A System pulls one message at a time off a bounded channel, runs
// against a world, and forwards any non-nil result to the systems
// registered via Dispatcher.ListenTo. Dispatcher.RunSystem starts one
// system's goroutine; Dispatcher.Dispatch publishes the next round of
// messages to every subscribed system; Dispatcher.Blocker waits until
// every system live at the time of the call has finished its turn.
//
// The package is generic over the world type so it never imports the
// package that defines it, avoiding an import cycle between a world's
// entity storage and its dispatcher.
package flow
