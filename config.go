package ecsgrid

import "github.com/ashfall-games/ecsgrid/grid"

// Config holds process-wide tunables for worlds created via Factory.
// Per-world state (schema, bit indices) never lives here; see §9's
// "the component bit index belongs to the world, not a global."
var Config config = config{
	defaultPartitionCapacity: grid.DefaultPartitionCapacity,
	defaultChannelCapacity:   64,
}

type config struct {
	tableEvents              grid.TableEvents
	defaultPartitionCapacity int
	defaultChannelCapacity   int
}

// SetTableEvents configures the structural-change hooks every new
// World's Table is built with.
func (c *config) SetTableEvents(te grid.TableEvents) {
	c.tableEvents = te
}

// SetDefaultChannelCapacity sets the input channel capacity new systems
// get from this package's NewSystem when called with a non-positive
// capacity; flow.NewSystem does not consult it.
func (c *config) SetDefaultChannelCapacity(n int) {
	c.defaultChannelCapacity = n
}

// DefaultChannelCapacity returns the configured default.
func (c *config) DefaultChannelCapacity() int {
	return c.defaultChannelCapacity
}
