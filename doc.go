/*
Package ecsgrid provides a data-oriented Entity-Component-System (ECS)
runtime: a column-oriented storage engine plus a reactive dataflow
dispatcher (package flow) for feeding groups of entities to user
systems every tick.

Core Concepts:

  - Entity: a handle to one row-id, valid until the row is reclaimed by
    a later swap-remove.
  - Component: a registered data type; its values live in a grid.Column
    shared across every archetype.
  - Archetype: the set of component bits an entity carries, encoded as
    a 128-bit mask.Mask.
  - Query: a boolean expression over component bits, resolved per tick
    into a list of partition ranges.

Basic Usage:

	world := ecsgrid.NewWorld()

	position := ecsgrid.FactoryNewComponent[Position]()
	velocity := ecsgrid.FactoryNewComponent[Velocity]()
	ecsgrid.RegisterComponent(world, position)
	ecsgrid.RegisterComponent(world, velocity)

	e, _ := ecsgrid.CreateEntity(world, position.Component, velocity.Component)
	position.Set(world, e, Position{X: 1, Y: 2})
	velocity.Set(world, e, Velocity{X: 0.1, Y: 0.2})

	q := ecsgrid.Factory.NewQuery()
	node := q.And(position.Component, velocity.Component)
	for rng := range ecsgrid.ForEachRange(world, node) {
		for row := rng.Start; row <= rng.End; row++ {
			pos := position.GetAt(world, row)
			vel := velocity.GetAt(world, row)
			pos.X += vel.X
			pos.Y += vel.Y
		}
	}

ecsgrid's column store (package grid) and bitset (package mask) are
grown in-module rather than treated as external collaborators, since
the fragmenting column layout and partition bookkeeping are this
engine's core. The hierarchical lock (package hlock) and dispatcher
(package flow) are kept as separate packages because each has a
self-contained concern and a generic API that does not need to know
about entities or archetypes.
*/
package ecsgrid
