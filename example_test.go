package ecsgrid_test

import (
	"fmt"

	"github.com/ashfall-games/ecsgrid"
)

type Position struct{ X, Y float64 }
type Velocity struct{ X, Y float64 }

func Example_basic() {
	world := ecsgrid.NewWorld()

	position := ecsgrid.FactoryNewComponent[Position]()
	velocity := ecsgrid.FactoryNewComponent[Velocity]()
	ecsgrid.RegisterComponent(world, position)
	ecsgrid.RegisterComponent(world, velocity)

	e, _ := ecsgrid.CreateEntity(world, position.Component, velocity.Component)
	position.Set(world, e, Position{X: 1.0, Y: 2.0})
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

	pos := position.Get(world, e)
	fmt.Printf("%.1f %.1f\n", pos.X, pos.Y)
	// Output: 1.1 2.2
}
