package ecsgrid

import "github.com/ashfall-games/ecsgrid/grid"

// factory implements the factory pattern for ecsgrid's top-level
// constructors.
type factory struct{}

// Factory is the global factory instance.
var Factory factory

// NewWorld returns an empty world.
func (f factory) NewWorld() *World { return NewWorld() }

// NewQuery returns an empty, composable Query.
func (f factory) NewQuery() Query { return NewQuery() }

// NewCursor returns a Cursor over entities matching query.
func (f factory) NewCursor(world *World, query QueryNode) *Cursor {
	return NewCursor(world, query)
}

// FactoryNewComponent returns the process-wide AccessibleComponent for
// T, ready to register on any World via RegisterComponent.
func FactoryNewComponent[T any]() AccessibleComponent[T] {
	et := grid.FactoryNewElementType[T]()
	return AccessibleComponent[T]{
		Component: et,
		Accessor:  grid.FactoryNewAccessor[T](et),
	}
}

// FactoryNewCache returns a SimpleCache with the given capacity.
func FactoryNewCache[T any](capacity int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: capacity,
	}
}
