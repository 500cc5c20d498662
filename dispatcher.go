package ecsgrid

import "github.com/ashfall-games/ecsgrid/flow"

// Dispatcher, System and Message re-export flow's generic dispatcher
// instantiated for World, so callers never need to import flow
// directly or spell out flow.Dispatcher[World] themselves.
type (
	Dispatcher = flow.Dispatcher[World]
	System     = flow.System[World]
	Message    = flow.Message
)

// NewDispatcher returns a Dispatcher bound to world.
func NewDispatcher(world *World) *Dispatcher {
	return flow.NewDispatcher(world)
}

// NewSystem returns a System identified by id, with a bounded input
// channel of the given capacity. A non-positive capacity falls back to
// Config.DefaultChannelCapacity().
func NewSystem(id string, capacity int, run flow.RunFunc[World]) *System {
	if capacity <= 0 {
		capacity = Config.DefaultChannelCapacity()
	}
	return flow.NewSystem(id, capacity, run)
}
